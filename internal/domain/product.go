package domain

// Product is a read-only entry in the external product catalog. The
// Price field is free-text as authored by the business and is only ever
// interpreted by the pricing package.
type Product struct {
	ID               string   `json:"id"`
	Slug             string   `json:"slug"`
	Name             string   `json:"name"`
	ShortDescription string   `json:"short_description,omitempty"`
	Description      string   `json:"description,omitempty"`
	Category         string   `json:"category"`
	Price            string   `json:"price"`
	Images           []string `json:"images,omitempty"`
	Sizes            []string `json:"sizes,omitempty"`
	Featured         bool     `json:"featured,omitempty"`
}
