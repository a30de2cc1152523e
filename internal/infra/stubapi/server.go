// Package stubapi is a local stand-in for the remote financial products
// API, wire-compatible with the production backend. It backs the serve
// command and integration-style tests; state lives in memory only.
package stubapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	domproduct "example.com/finproducts-admin/internal/domain/product"
)

type Server struct {
	mu       sync.RWMutex
	order    []string
	products map[string]domproduct.FinancialProduct
	validate *validator.Validate
	logger   *slog.Logger
	router   chi.Router
}

func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		products: make(map[string]domproduct.FinancialProduct),
		validate: validator.New(),
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Route("/bp/products", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Get("/verification/{id}", s.handleVerification)
		r.Get("/{id}", s.handleGet)
		r.Put("/{id}", s.handleUpdate)
		r.Delete("/{id}", s.handleDelete)
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Seed replaces the store contents, preserving the given order.
func (s *Server) Seed(products []domproduct.FinancialProduct) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = s.order[:0]
	s.products = make(map[string]domproduct.FinancialProduct, len(products))
	for _, p := range products {
		s.order = append(s.order, p.ID)
		s.products[p.ID] = p
	}
}

// productPayload mirrors the backend's request validation.
type productPayload struct {
	ID           string          `json:"id" validate:"required,min=3,max=10"`
	Name         string          `json:"name" validate:"required,min=5,max=100"`
	Description  string          `json:"description" validate:"required,min=10,max=200"`
	Logo         string          `json:"logo" validate:"required"`
	DateRelease  domproduct.Date `json:"date_release"`
	DateRevision domproduct.Date `json:"date_revision"`
}

func (p productPayload) toProduct() domproduct.FinancialProduct {
	return domproduct.FinancialProduct{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Logo:         p.Logo,
		DateRelease:  p.DateRelease,
		DateRevision: p.DateRevision,
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	out := make([]domproduct.FinancialProduct, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.products[id])
	}
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, map[string]any{"data": out})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.RLock()
	p, ok := s.products[id]
	s.mu.RUnlock()

	if !ok {
		respondMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := s.decodeAndValidate(r, &payload); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.DateRelease.IsZero() || payload.DateRevision.IsZero() {
		respondMessage(w, http.StatusBadRequest, "date_release and date_revision are required")
		return
	}

	s.mu.Lock()
	if _, exists := s.products[payload.ID]; exists {
		s.mu.Unlock()
		respondMessage(w, http.StatusBadRequest, "Duplicate identifier found in the database")
		return
	}
	p := payload.toProduct()
	s.order = append(s.order, p.ID)
	s.products[p.ID] = p
	s.mu.Unlock()

	s.logger.Info("stub: product created", "id", p.ID)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": domproduct.MsgCreated,
		"data":    p,
	})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload productPayload
	if err := s.decodeAndValidate(r, &payload); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	if _, ok := s.products[id]; !ok {
		s.mu.Unlock()
		respondMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	p := payload.toProduct()
	p.ID = id // the id is immutable; the path wins over the body
	s.products[id] = p
	s.mu.Unlock()

	s.logger.Info("stub: product updated", "id", id)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": domproduct.MsgUpdated,
		"data":    p,
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	if _, ok := s.products[id]; !ok {
		s.mu.Unlock()
		respondMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	delete(s.products, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.logger.Info("stub: product deleted", "id", id)
	respondMessage(w, http.StatusOK, "Product removed successfully")
}

func (s *Server) handleVerification(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.RLock()
	_, exists := s.products[id]
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, exists)
}

func (s *Server) decodeAndValidate(r *http.Request, dst *productPayload) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return s.validate.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
