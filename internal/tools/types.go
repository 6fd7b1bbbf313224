// Package tools defines the Tool interface and the five market-data tools
// the assistant exposes to the model.
package tools

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Tool represents a callable function the LLM can invoke
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]interface{}
	Execute     func(ctx context.Context, input map[string]interface{}) (string, error)
}

// decodeInput decodes the model's free-form argument map into a typed
// params struct. Models are loose with types, so weak typing is on.
func decodeInput(input map[string]interface{}, out any) error {
	cfg := &mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           out,
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
