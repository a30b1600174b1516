package notify

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"

	"exhibit/storefront/internal/config"
	"exhibit/storefront/internal/domain"
	"exhibit/storefront/internal/pricing"
)

// EmailSender delivers a quotation request to the business inbox.
type EmailSender interface {
	SendQuotation(ctx context.Context, q *domain.QuotationRequest) error
}

type resendClient struct {
	rl         ratelimit.Limiter
	config     config.ResendConfig
	httpClient *resty.Client
}

type resendEmail struct {
	From    string `json:"from"`
	To      string `json:"to"`
	ReplyTo string `json:"reply_to,omitempty"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// NewResendClient returns an EmailSender backed by the Resend HTTP API.
func NewResendClient(cfg config.ResendConfig) EmailSender {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(30*time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(2*time.Second).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	rps := cfg.MaxRequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &resendClient{
		rl:         ratelimit.New(rps),
		config:     cfg,
		httpClient: client,
	}
}

func (c *resendClient) SendQuotation(ctx context.Context, q *domain.QuotationRequest) error {
	if c.config.APIKey == "" || c.config.FromEmail == "" || c.config.ToEmail == "" {
		return fmt.Errorf("email service not configured")
	}

	c.rl.Take()

	email := resendEmail{
		From:    c.config.FromEmail,
		To:      c.config.ToEmail,
		ReplyTo: q.Company.Email,
		Subject: fmt.Sprintf("New Quotation Request from %s", q.Company.CompanyName),
		HTML:    quotationHTML(q),
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(email).
		Post("/emails")
	if err != nil {
		return fmt.Errorf("failed to send quotation email: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("resend API returned status %d: %s", resp.StatusCode(), resp.String())
	}

	log.Debugf("Sent quotation email for request %s", q.ID)
	return nil
}

func quotationHTML(q *domain.QuotationRequest) string {
	var b strings.Builder
	b.WriteString("<h2>New Quotation Request</h2>")
	fmt.Fprintf(&b, "<p><strong>Company:</strong> %s</p>", html.EscapeString(q.Company.CompanyName))
	fmt.Fprintf(&b, "<p><strong>Contact Person:</strong> %s</p>", html.EscapeString(q.Company.ContactPerson))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", html.EscapeString(q.Company.Email))
	fmt.Fprintf(&b, "<p><strong>Phone:</strong> %s</p>", html.EscapeString(q.Company.Phone))
	fmt.Fprintf(&b, "<p><strong>Address:</strong> %s</p>", html.EscapeString(q.Company.Address))

	b.WriteString("<h3>Products</h3><ul>")
	for _, item := range q.Items {
		line := fmt.Sprintf("%s × %d at %s", item.Name, item.Quantity, pricing.FormatPrice(item.Price))
		if item.PriceOption != "" {
			line += fmt.Sprintf(" (%s)", item.PriceOption)
		}
		fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(line))
	}
	b.WriteString("</ul>")

	total := pricing.FormatPrice(fmt.Sprintf("RM %.2f", q.TotalPrice))
	fmt.Fprintf(&b, "<p><strong>Total Items:</strong> %d</p>", q.TotalItems)
	fmt.Fprintf(&b, "<p><strong>Total Price:</strong> %s</p>", total)
	fmt.Fprintf(&b, "<hr /><p style=\"color: #666; font-size: 12px;\">Reply directly to this email to respond to %s.</p>",
		html.EscapeString(q.Company.ContactPerson))

	return b.String()
}
