package domain

// PriceOption is one selectable price variant derived from a catalog
// price string. Value is always in canonical "RM X,XXX.XX" form and
// NumericValue is the magnitude encoded in it.
type PriceOption struct {
	Label        string  `json:"label"`
	Value        string  `json:"value"`
	NumericValue float64 `json:"numeric_value"`
}
