package domain

import "time"

// CompanyDetails identifies the customer requesting a quotation.
type CompanyDetails struct {
	CompanyName   string `json:"company_name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

// QuotationRequest is a submitted quotation: the customer's details plus
// a snapshot of the cart at submission time.
type QuotationRequest struct {
	ID         string         `json:"id"`
	Company    CompanyDetails `json:"company"`
	Items      []CartItem     `json:"items"`
	TotalItems int            `json:"total_items"`
	TotalPrice float64        `json:"total_price"`
	CreatedAt  time.Time      `json:"created_at"`
}
