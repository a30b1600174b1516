// Package quote turns a cart snapshot into the outbound quotation
// handoff: aggregated totals for display plus the WhatsApp message and
// deep link the business receives. The cart core knows nothing about
// any of this.
package quote

import (
	"fmt"
	"net/url"
	"strings"

	"exhibit/storefront/internal/cart"
	"exhibit/storefront/internal/domain"
	"exhibit/storefront/internal/pricing"
)

// Summary is the cart snapshot handed to quotation collaborators.
type Summary struct {
	Items          []domain.CartItem `json:"items"`
	TotalItems     int               `json:"total_items"`
	TotalPrice     float64           `json:"total_price"`
	FormattedTotal string            `json:"formatted_total"`
}

// Summarize aggregates the cart lines into a Summary.
func Summarize(items []domain.CartItem) Summary {
	totalItems := 0
	for _, item := range items {
		totalItems += item.Quantity
	}
	total := cart.TotalPrice(items)

	return Summary{
		Items:          items,
		TotalItems:     totalItems,
		TotalPrice:     total,
		FormattedTotal: pricing.FormatPrice(fmt.Sprintf("RM %.2f", total)),
	}
}

// WhatsAppMessage renders the quotation request text sent to the
// business over WhatsApp.
func WhatsAppMessage(company domain.CompanyDetails, summary Summary) string {
	divider := strings.Repeat("=", 40)

	var b strings.Builder
	b.WriteString("*QUOTATION REQUEST*\n\n")
	b.WriteString("*Company Details:*\n")
	fmt.Fprintf(&b, "Company: %s\n", company.CompanyName)
	fmt.Fprintf(&b, "Contact Person: %s\n", company.ContactPerson)
	fmt.Fprintf(&b, "Email: %s\n", company.Email)
	fmt.Fprintf(&b, "Phone: %s\n", company.Phone)
	fmt.Fprintf(&b, "Address: %s\n\n", company.Address)

	b.WriteString("*Products Requested:*\n")
	b.WriteString(divider + "\n\n")

	for i, item := range summary.Items {
		fmt.Fprintf(&b, "*%d. %s*\n", i+1, item.Name)
		fmt.Fprintf(&b, "   Category: %s\n", item.Category)
		if item.PriceOption != "" {
			fmt.Fprintf(&b, "   Option: %s\n", item.PriceOption)
		}
		fmt.Fprintf(&b, "   Price: %s\n", pricing.FormatPrice(item.Price))
		fmt.Fprintf(&b, "   Quantity: %d\n", item.Quantity)
		if item.Size != "" {
			fmt.Fprintf(&b, "   Size: %s\n", item.Size)
		}
		if item.Specification != "" {
			fmt.Fprintf(&b, "   Specification: %s\n", item.Specification)
		}
		b.WriteString("\n")
	}

	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "*Total Items: %d*\n", summary.TotalItems)
	fmt.Fprintf(&b, "*Total Price: %s*\n\n", summary.FormattedTotal)
	b.WriteString("Please provide a detailed quotation for the above products.\n")
	b.WriteString("Thank you!")

	return b.String()
}

// WhatsAppLink builds the wa.me deep link carrying the message to the
// given number.
func WhatsAppLink(number, message string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + number + "?text=" + escaped
}
