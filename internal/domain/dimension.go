package domain

// DimensionDefinition describes an analytic dimension (cost center, project...)
// that journal lines may or must carry.
type DimensionDefinition struct {
	Code          string   `json:"code"`
	Required      bool     `json:"required"`
	Active        bool     `json:"active"`
	AllowedValues []string `json:"allowedValues,omitempty"`
}

// DimensionedLine is a journal line reference together with its dimension codes.
type DimensionedLine struct {
	LineRef    string            `json:"lineRef"`
	AccountID  string            `json:"accountId"`
	Dimensions map[string]string `json:"dimensions"`
}
