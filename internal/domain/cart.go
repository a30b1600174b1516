package domain

// CartItem is one (product, chosen price option) line in a cart.
// PriceOption is empty for products without selectable options; two
// lines with the same product but different options are distinct.
type CartItem struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Price         string `json:"price"`
	Image         string `json:"image,omitempty"`
	PriceOption   string `json:"price_option,omitempty"`
	Quantity      int    `json:"quantity"`
	Size          string `json:"size,omitempty"`
	Specification string `json:"specification,omitempty"`
}

// SameLine reports whether the item occupies the cart line identified
// by (productID, priceOption).
func (i CartItem) SameLine(productID, priceOption string) bool {
	return i.ProductID == productID && i.PriceOption == priceOption
}
