package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exhibit/storefront/internal/catalog"
	"exhibit/storefront/internal/domain"
	"exhibit/storefront/internal/quote"
)

type memoryPersistence struct {
	snapshots map[string][]byte
}

func (m *memoryPersistence) Load(_ context.Context, cartID string) ([]byte, error) {
	return m.snapshots[cartID], nil
}

func (m *memoryPersistence) Save(_ context.Context, cartID string, snapshot []byte) error {
	m.snapshots[cartID] = snapshot
	return nil
}

func (m *memoryPersistence) Delete(_ context.Context, cartID string) error {
	delete(m.snapshots, cartID)
	return nil
}

type recordingRepository struct {
	saved []*domain.QuotationRequest
}

func (r *recordingRepository) SaveQuotation(_ context.Context, q *domain.QuotationRequest) error {
	r.saved = append(r.saved, q)
	return nil
}

type recordingEmailSender struct {
	sent []*domain.QuotationRequest
}

func (r *recordingEmailSender) SendQuotation(_ context.Context, q *domain.QuotationRequest) error {
	r.sent = append(r.sent, q)
	return nil
}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: "TENSION-90", Slug: "tension-stand-90", Name: "Tension Stand 90x200",
			Category: "Tension System", Price: "RM 300 (Single) / RM 400 (Double sided)"},
		{ID: "POP-UP-2X3", Slug: "pop-up-2x3", Name: "Pop Up Straight 2x3",
			Category: "Display System", Price: "RM 1,500"},
		{ID: "CUSTOM-JOB", Slug: "custom-job", Name: "Custom Fabrication",
			Category: "Custom", Price: "Contact us for pricing"},
	}
}

type testClient struct {
	t      *testing.T
	router http.Handler
	cookie *http.Cookie
}

func newTestClient(t *testing.T) (*testClient, *recordingRepository, *recordingEmailSender) {
	repo := &recordingRepository{}
	emails := &recordingEmailSender{}
	srv := NewServer(
		catalog.New(testProducts()),
		&memoryPersistence{snapshots: make(map[string][]byte)},
		repo,
		emails,
		"60103570729",
	)
	return &testClient{t: t, router: srv.Router()}, repo, emails
}

func (c *testClient) do(method, target string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	// Carry the cart session cookie across requests.
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == cartCookieName {
			c.cookie = cookie
		}
	}
	return rec
}

func decodeSummary(t *testing.T, rec *httptest.ResponseRecorder) quote.Summary {
	t.Helper()
	var summary quote.Summary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
	return summary
}

func TestListProducts(t *testing.T) {
	client, _, _ := newTestClient(t)

	rec := client.do(http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []domain.Product
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&products))
	assert.Len(t, products, 3)

	rec = client.do(http.MethodGet, "/products?category=Display+System", nil)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&products))
	assert.Len(t, products, 1)
}

func TestProductOptions(t *testing.T) {
	client, _, _ := newTestClient(t)

	rec := client.do(http.MethodGet, "/products/TENSION-90/options", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var options []domain.PriceOption
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&options))
	require.Len(t, options, 2)
	assert.Equal(t, "Single Sided", options[0].Label)
	assert.Equal(t, "Double Sided", options[1].Label)

	// Unparseable prices yield an empty option list, not an error.
	rec = client.do(http.MethodGet, "/products/CUSTOM-JOB/options", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&options))
	assert.Empty(t, options)
}

func TestProductLookupBySlug(t *testing.T) {
	client, _, _ := newTestClient(t)

	rec := client.do(http.MethodGet, "/products/pop-up-2x3", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = client.do(http.MethodGet, "/products/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartFlow(t *testing.T) {
	client, _, _ := newTestClient(t)

	rec := client.do(http.MethodPost, "/cart/items",
		addItemRequest{ProductID: "TENSION-90", PriceOption: "Double Sided"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = client.do(http.MethodPost, "/cart/items",
		addItemRequest{ProductID: "TENSION-90", PriceOption: "Double Sided"})
	summary := decodeSummary(t, rec)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 2, summary.Items[0].Quantity)
	assert.Equal(t, "RM 400.00", summary.Items[0].Price)

	rec = client.do(http.MethodPost, "/cart/items",
		addItemRequest{ProductID: "TENSION-90", PriceOption: "Single Sided"})
	summary = decodeSummary(t, rec)
	assert.Len(t, summary.Items, 2)

	rec = client.do(http.MethodPost, "/cart/items", addItemRequest{ProductID: "POP-UP-2X3"})
	summary = decodeSummary(t, rec)
	require.Len(t, summary.Items, 3)
	assert.Equal(t, "RM 1,500.00", summary.Items[2].Price)
	assert.Equal(t, 4, summary.TotalItems)
	assert.Equal(t, 2600.0, summary.TotalPrice)
	assert.Equal(t, "RM 2,600.00", summary.FormattedTotal)

	rec = client.do(http.MethodPut, "/cart/items",
		updateItemRequest{ProductID: "TENSION-90", PriceOption: "Single Sided", Quantity: 0})
	summary = decodeSummary(t, rec)
	assert.Len(t, summary.Items, 2)
	assert.Equal(t, 3, summary.TotalItems)

	// No price_option parameter: remove every variant of the product.
	rec = client.do(http.MethodDelete, "/cart/items?product_id=TENSION-90", nil)
	summary = decodeSummary(t, rec)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "POP-UP-2X3", summary.Items[0].ProductID)

	rec = client.do(http.MethodDelete, "/cart", nil)
	summary = decodeSummary(t, rec)
	assert.Empty(t, summary.Items)
	assert.Equal(t, 0, summary.TotalItems)
}

func TestAddItemUnknownOption(t *testing.T) {
	client, _, _ := newTestClient(t)

	rec := client.do(http.MethodPost, "/cart/items",
		addItemRequest{ProductID: "POP-UP-2X3", PriceOption: "Double Sided"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddItemUnknownProduct(t *testing.T) {
	client, _, _ := newTestClient(t)

	rec := client.do(http.MethodPost, "/cart/items", addItemRequest{ProductID: "NOPE"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddItemUnparseablePriceKeepsRawString(t *testing.T) {
	client, _, _ := newTestClient(t)

	rec := client.do(http.MethodPost, "/cart/items", addItemRequest{ProductID: "CUSTOM-JOB"})
	summary := decodeSummary(t, rec)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "Contact us for pricing", summary.Items[0].Price)
	assert.Equal(t, 0.0, summary.TotalPrice)
}

func TestSubmitQuotation(t *testing.T) {
	client, repo, emails := newTestClient(t)

	client.do(http.MethodPost, "/cart/items",
		addItemRequest{ProductID: "TENSION-90", PriceOption: "Double Sided"})

	rec := client.do(http.MethodPost, "/quotation", domain.CompanyDetails{
		CompanyName:   "Acme Events",
		ContactPerson: "Jane Lee",
		Email:         "jane@acme.example",
		Phone:         "+60123456789",
		Address:       "Kuala Lumpur",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp["whatsapp_url"], "https://wa.me/60103570729?text=")
	assert.Contains(t, resp["message"], "*QUOTATION REQUEST*")

	require.Len(t, repo.saved, 1)
	assert.Equal(t, 1, repo.saved[0].TotalItems)
	assert.Equal(t, 400.0, repo.saved[0].TotalPrice)
	require.Len(t, emails.sent, 1)
}

func TestSubmitQuotationValidation(t *testing.T) {
	client, repo, _ := newTestClient(t)

	client.do(http.MethodPost, "/cart/items", addItemRequest{ProductID: "POP-UP-2X3"})

	// Missing fields.
	rec := client.do(http.MethodPost, "/quotation", domain.CompanyDetails{CompanyName: "Acme"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Bad email.
	rec = client.do(http.MethodPost, "/quotation", domain.CompanyDetails{
		CompanyName: "Acme", ContactPerson: "J", Email: "not-an-email", Phone: "1", Address: "KL",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Empty(t, repo.saved)
}

func TestSubmitQuotationEmptyCart(t *testing.T) {
	client, _, _ := newTestClient(t)

	rec := client.do(http.MethodPost, "/quotation", domain.CompanyDetails{
		CompanyName: "Acme", ContactPerson: "J", Email: "j@acme.example", Phone: "1", Address: "KL",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
