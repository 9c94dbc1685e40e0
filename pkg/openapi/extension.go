package openapi

import (
	"encoding/json"
	"fmt"
)

// ExtensionKey is the schema extension read for field settings.
const ExtensionKey = "x-formfield"

type fieldExtension struct {
	Rules         []string `json:"rules"`
	Hint          string   `json:"hint"`
	Placeholder   string   `json:"placeholder"`
	CustomMessage string   `json:"customMessage"`
	CustomError   string   `json:"customError"`
	Type          string   `json:"type"`
	Theme         string   `json:"theme"`
	AutoComplete  string   `json:"autoComplete"`
	Optional      bool     `json:"optional"`
	Order         *int     `json:"order"`
	Skip          bool     `json:"skip"`
}

// decodeExtension reads x-formfield from already decoded extension values.
func decodeExtension(extensions map[string]any) (fieldExtension, error) {
	var ext fieldExtension
	raw, ok := extensions[ExtensionKey]
	if !ok || raw == nil {
		return ext, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return ext, fmt.Errorf("openapi: encode %s: %w", ExtensionKey, err)
	}
	if err := json.Unmarshal(data, &ext); err != nil {
		return ext, fmt.Errorf("openapi: decode %s: %w", ExtensionKey, err)
	}
	return ext, nil
}
