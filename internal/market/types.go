package market

// Quote is the latest USD quote for one cryptocurrency.
type Quote struct {
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	MarketCap        float64 `json:"market_cap"`
	Volume24h        float64 `json:"volume_24h"`
	PercentChange24h float64 `json:"percent_change_24h"`
	PercentChange7d  float64 `json:"percent_change_7d"`
	LastUpdated      string  `json:"last_updated"`
}

// HistoricalPrice is a price observation near a requested past date.
type HistoricalPrice struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	RequestedDate string  `json:"requested_date"`
	ActualDate    string  `json:"actual_date"`
}

// Mover is one row of the gainers/losers board.
type Mover struct {
	Name             string  `json:"name"`
	Symbol           string  `json:"symbol"`
	Rank             int     `json:"rank"`
	Price            float64 `json:"price"`
	MarketCap        float64 `json:"market_cap"`
	PercentChange24h float64 `json:"percent_change_24h"`
}

// Movers holds the top gainers and losers over the last 24 hours.
type Movers struct {
	Gainers []Mover `json:"gainers"`
	Losers  []Mover `json:"losers"`
}

// FearGreed is a Fear & Greed index reading.
type FearGreed struct {
	Value          int    `json:"value"`
	Classification string `json:"classification"`
	Timestamp      string `json:"timestamp"`
	// ActualDate is set on historical lookups when the nearest available
	// record is not on the requested day.
	ActualDate string `json:"actual_date,omitempty"`
}

// ─── CoinMarketCap wire types ─────────────────────────────────────────────────

type cmcStatus struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

type cmcKeyInfo struct {
	Status cmcStatus `json:"status"`
}

func (r cmcKeyInfo) status() cmcStatus { return r.Status }

func (r cmcQuotesLatest) status() cmcStatus { return r.Status }

func (r cmcListings) status() cmcStatus { return r.Status }

func (r cmcFearGreedLatest) status() cmcStatus { return r.Status }

func (r cmcFearGreedHistorical) status() cmcStatus { return r.Status }

func (r cmcQuotesHistorical) status() cmcStatus { return r.Status }

type cmcUSDQuote struct {
	Price            float64 `json:"price"`
	MarketCap        float64 `json:"market_cap"`
	Volume24h        float64 `json:"volume_24h"`
	PercentChange24h float64 `json:"percent_change_24h"`
	PercentChange7d  float64 `json:"percent_change_7d"`
	LastUpdated      string  `json:"last_updated"`
}

type cmcQuotesLatest struct {
	Status cmcStatus `json:"status"`
	Data   map[string]struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
		Rank   int    `json:"cmc_rank"`
		Quote  struct {
			USD cmcUSDQuote `json:"USD"`
		} `json:"quote"`
	} `json:"data"`
}

type cmcListings struct {
	Status cmcStatus `json:"status"`
	Data   []struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
		Rank   int    `json:"cmc_rank"`
		Quote  struct {
			USD cmcUSDQuote `json:"USD"`
		} `json:"quote"`
	} `json:"data"`
}

type cmcFearGreedLatest struct {
	Status cmcStatus `json:"status"`
	Data   struct {
		Value          int    `json:"value"`
		Classification string `json:"value_classification"`
		UpdateTime     string `json:"update_time"`
	} `json:"data"`
}

type cmcFearGreedHistorical struct {
	Status cmcStatus `json:"status"`
	Data   []struct {
		Timestamp      string `json:"timestamp"` // unix seconds as string
		Value          int    `json:"value"`
		Classification string `json:"value_classification"`
	} `json:"data"`
}

type cmcQuotesHistorical struct {
	Status cmcStatus `json:"status"`
	Data   map[string][]struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
		Quotes []struct {
			Timestamp string `json:"timestamp"`
			Quote     struct {
				USD struct {
					Price float64 `json:"price"`
				} `json:"USD"`
			} `json:"quote"`
		} `json:"quotes"`
	} `json:"data"`
}
