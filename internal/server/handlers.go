package server

import (
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"exhibit/storefront/internal/domain"
	"exhibit/storefront/internal/pricing"
	"exhibit/storefront/internal/quote"
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products := s.catalog.ByCategory(r.URL.Query().Get("category"))
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := s.lookupProduct(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"product": product,
		"options": pricing.ParseOptions(product.Price),
	})
}

func (s *Server) handleProductOptions(w http.ResponseWriter, r *http.Request) {
	product, ok := s.lookupProduct(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	options := pricing.ParseOptions(product.Price)
	if options == nil {
		options = []domain.PriceOption{}
	}
	writeJSON(w, http.StatusOK, options)
}

// lookupProduct resolves by catalog ID first, then by slug, matching
// how storefront URLs address products.
func (s *Server) lookupProduct(key string) (domain.Product, bool) {
	if product, ok := s.catalog.ByID(key); ok {
		return product, true
	}
	return s.catalog.BySlug(key)
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	store := s.sessions.store(r.Context(), s.cartID(w, r))
	writeJSON(w, http.StatusOK, quote.Summarize(store.Items()))
}

type addItemRequest struct {
	ProductID     string `json:"product_id"`
	PriceOption   string `json:"price_option"`
	Size          string `json:"size"`
	Specification string `json:"specification"`
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}

	product, ok := s.catalog.ByID(req.ProductID)
	if !ok {
		writeError(w, http.StatusNotFound, "product %s not found", req.ProductID)
		return
	}

	// The line keeps the chosen option's canonical price. Products
	// whose price string parses to nothing go in with the raw string
	// and no option.
	price := product.Price
	options := pricing.ParseOptions(product.Price)
	if req.PriceOption != "" {
		chosen, ok := findOption(options, req.PriceOption)
		if !ok {
			writeError(w, http.StatusBadRequest, "product %s has no option %q", req.ProductID, req.PriceOption)
			return
		}
		price = chosen.Value
	} else if len(options) > 0 {
		price = options[0].Value
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}

	store := s.sessions.store(r.Context(), s.cartID(w, r))
	store.Add(r.Context(), domain.CartItem{
		ProductID:     product.ID,
		Name:          product.Name,
		Category:      product.Category,
		Price:         price,
		Image:         image,
		PriceOption:   req.PriceOption,
		Size:          req.Size,
		Specification: req.Specification,
	})

	writeJSON(w, http.StatusOK, quote.Summarize(store.Items()))
}

type updateItemRequest struct {
	ProductID   string `json:"product_id"`
	PriceOption string `json:"price_option"`
	Quantity    int    `json:"quantity"`
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}

	store := s.sessions.store(r.Context(), s.cartID(w, r))
	store.UpdateQuantity(r.Context(), req.ProductID, req.PriceOption, req.Quantity)
	writeJSON(w, http.StatusOK, quote.Summarize(store.Items()))
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product_id")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	store := s.sessions.store(r.Context(), s.cartID(w, r))
	// Without a price_option parameter the removal addresses every
	// option variant of the product.
	if r.URL.Query().Has("price_option") {
		store.Remove(r.Context(), productID, r.URL.Query().Get("price_option"))
	} else {
		store.RemoveProduct(r.Context(), productID)
	}
	writeJSON(w, http.StatusOK, quote.Summarize(store.Items()))
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	store := s.sessions.store(r.Context(), s.cartID(w, r))
	store.Clear(r.Context())
	writeJSON(w, http.StatusOK, quote.Summarize(store.Items()))
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	store := s.sessions.store(r.Context(), s.cartID(w, r))
	writeJSON(w, http.StatusOK, quote.Summarize(store.Items()))
}

func (s *Server) handleSubmitQuotation(w http.ResponseWriter, r *http.Request) {
	var company domain.CompanyDetails
	if err := json.NewDecoder(r.Body).Decode(&company); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}

	if company.CompanyName == "" || company.ContactPerson == "" ||
		company.Email == "" || company.Phone == "" || company.Address == "" {
		writeError(w, http.StatusBadRequest, "all company fields are required")
		return
	}
	if !emailRegexp.MatchString(company.Email) {
		writeError(w, http.StatusBadRequest, "invalid email address")
		return
	}

	store := s.sessions.store(r.Context(), s.cartID(w, r))
	summary := quote.Summarize(store.Items())
	if len(summary.Items) == 0 {
		writeError(w, http.StatusBadRequest, "cart is empty")
		return
	}

	request := &domain.QuotationRequest{
		ID:         uuid.New().String(),
		Company:    company,
		Items:      summary.Items,
		TotalItems: summary.TotalItems,
		TotalPrice: summary.TotalPrice,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.quotations.SaveQuotation(r.Context(), request); err != nil {
		log.Errorf("Failed to log quotation request %s: %v", request.ID, err)
	}

	// Email delivery is best-effort; the WhatsApp handoff below is the
	// primary channel.
	if err := s.emails.SendQuotation(r.Context(), request); err != nil {
		log.Warnf("Failed to email quotation request %s: %v", request.ID, err)
	}

	message := quote.WhatsAppMessage(company, summary)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":           request.ID,
		"message":      message,
		"whatsapp_url": quote.WhatsAppLink(s.whatsAppNumber, message),
	})
}

func findOption(options []domain.PriceOption, label string) (domain.PriceOption, bool) {
	for _, o := range options {
		if o.Label == label {
			return o, true
		}
	}
	return domain.PriceOption{}, false
}
