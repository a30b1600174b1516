package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"exhibit/storefront/internal/cart"
	"exhibit/storefront/internal/catalog"
	"exhibit/storefront/internal/notify"
	"exhibit/storefront/internal/repository"
)

const cartCookieName = "cart_id"

// Server exposes the storefront HTTP API: catalog browsing, cart
// mutations scoped to a cart-session cookie, and quotation submission.
type Server struct {
	catalog        *catalog.Catalog
	sessions       *sessions
	quotations     repository.QuotationRepository
	emails         notify.EmailSender
	whatsAppNumber string
}

func NewServer(
	cat *catalog.Catalog,
	persistence cart.Persistence,
	quotations repository.QuotationRepository,
	emails notify.EmailSender,
	whatsAppNumber string,
) *Server {
	return &Server{
		catalog:        cat,
		sessions:       newSessions(persistence),
		quotations:     quotations,
		emails:         emails,
		whatsAppNumber: whatsAppNumber,
	}
}

// Router builds the chi router with all storefront routes registered.
func (s *Server) Router() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	router.Get("/products", s.handleListProducts)
	router.Get("/products/{id}", s.handleGetProduct)
	router.Get("/products/{id}/options", s.handleProductOptions)

	router.Get("/cart", s.handleGetCart)
	router.Post("/cart/items", s.handleAddItem)
	router.Put("/cart/items", s.handleUpdateItem)
	router.Delete("/cart/items", s.handleRemoveItem)
	router.Delete("/cart", s.handleClearCart)
	router.Get("/cart/quote", s.handleQuote)

	router.Post("/quotation", s.handleSubmitQuotation)

	return router
}

// cartID returns the cart identifier for the request, minting one and
// setting the session cookie if the client has none yet.
func (s *Server) cartID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(cartCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, format string, args ...interface{}) {
	writeJSON(w, status, map[string]string{"error": fmt.Sprintf(format, args...)})
}
