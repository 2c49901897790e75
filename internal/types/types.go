package types

// Parameter is one row of an element's parameter table.
type Parameter struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// ApiDoc is the structured record extracted from one documentation page.
// Parameters and Examples are never nil so the serialized form always
// shows them as arrays.
type ApiDoc struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Examples    []string    `json:"examples"`
}

// NewApiDoc returns an empty ApiDoc with non-nil sequences.
func NewApiDoc() *ApiDoc {
	return &ApiDoc{
		Parameters: []Parameter{},
		Examples:   []string{},
	}
}
