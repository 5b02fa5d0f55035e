// Package api exposes the store engine over HTTP. Handlers are thin: they
// decode the request, call the engine, and map domain errors to status codes.
package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/sleekshopper/storefront/internal/catalog"
	"github.com/sleekshopper/storefront/internal/profile"
)

// maxBodyBytes caps request bodies; every payload here is a few fields.
const maxBodyBytes = 1 << 16

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// ImageBaseURL is prepended to relative image paths in product responses.
	// When empty, image paths are returned as stored in the catalog.
	ImageBaseURL string
}

// Handler serves the storefront API. Product and category reads go straight to
// the shared immutable catalog; cart and order operations go through the
// per-session engine registry.
type Handler struct {
	cfg      Config
	catalog  *catalog.Catalog
	profiles profile.Provider
	sessions *sessionRegistry
	lg       *zap.Logger
}

// NewHandler constructs a Handler over the given catalog and profile provider.
func NewHandler(cfg Config, cat *catalog.Catalog, profiles profile.Provider, lg *zap.Logger) *Handler {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Handler{
		cfg:      cfg,
		catalog:  cat,
		profiles: profiles,
		sessions: newSessionRegistry(cat, lg),
		lg:       lg,
	}
}

// Routes returns the API route table.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("GET /api/products/featured", h.featuredProducts)
	mux.HandleFunc("GET /api/products/{id}", h.getProduct)
	mux.HandleFunc("GET /api/categories", h.listCategories)

	mux.HandleFunc("GET /api/cart", h.getCart)
	mux.HandleFunc("POST /api/cart/items", h.addCartItem)
	mux.HandleFunc("PATCH /api/cart/items/{id}", h.updateCartItem)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.removeCartItem)
	mux.HandleFunc("DELETE /api/cart", h.clearCart)

	mux.HandleFunc("POST /api/checkout", h.checkout)
	mux.HandleFunc("GET /api/orders", h.listOrders)
	mux.HandleFunc("GET /api/orders/{id}", h.getOrder)
	mux.HandleFunc("POST /api/orders/{id}/advance", h.advanceOrder)

	mux.HandleFunc("GET /api/account", h.getAccount)
	mux.HandleFunc("PUT /api/account", h.updateAccount)

	return mux
}

// imageURL resolves a product image path against the configured base URL.
func (h *Handler) imageURL(path string) string {
	if path == "" || h.cfg.ImageBaseURL == "" || strings.Contains(path, "://") {
		return path
	}
	return h.cfg.ImageBaseURL + path
}

// readBody reads a size-capped request body.
func readBody(r *http.Request) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
}

// writeJSON writes the encoder's buffer with the given status.
func writeJSON(w http.ResponseWriter, status int, e *jx.Encoder) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// internalError logs the error with the request-scoped logger and responds 500.
func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	zctx.From(r.Context()).Error("request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

// writeError writes the API error shape: {"code": <status>, "message": ...}.
func writeError(w http.ResponseWriter, status int, msg string) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("code")
	e.Int(status)
	e.FieldStart("message")
	e.Str(msg)
	e.ObjEnd()
	writeJSON(w, status, &e)
}
