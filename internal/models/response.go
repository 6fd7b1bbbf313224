package models

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// ChatResponse is returned by POST /api/v1/chat
type ChatResponse struct {
	Status    string   `json:"status"`
	Prompt    string   `json:"prompt"`
	Answer    string   `json:"answer"`
	ToolsUsed []string `json:"tools_used,omitempty"`
}
