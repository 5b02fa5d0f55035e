package api

import (
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/sleekshopper/storefront/internal/catalog"
)

// listProducts returns the catalog, narrowed by any filter query parameters.
// The search parameter is passed into the filter verbatim.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeProducts(w, h.catalog.Filter(f))
}

// featuredProducts returns the products flagged for the featured section.
func (h *Handler) featuredProducts(w http.ResponseWriter, _ *http.Request) {
	h.writeProducts(w, h.catalog.Featured())
}

// getProduct returns a single product by id.
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "product id must be an integer")
		return
	}

	p, err := h.catalog.ByID(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		h.internalError(w, r, err)
		return
	}

	var e jx.Encoder
	h.encodeProduct(&e, p)
	writeJSON(w, http.StatusOK, &e)
}

// listCategories returns the distinct categories in first-seen order.
func (h *Handler) listCategories(w http.ResponseWriter, _ *http.Request) {
	var e jx.Encoder
	e.ArrStart()
	for _, c := range h.catalog.Categories() {
		e.Str(c)
	}
	e.ArrEnd()
	writeJSON(w, http.StatusOK, &e)
}

// filterFromQuery builds a catalog.Filter from the request query string.
func filterFromQuery(r *http.Request) (catalog.Filter, error) {
	q := r.URL.Query()
	f := catalog.Filter{
		SearchText: q.Get("search"),
		Category:   q.Get("category"),
	}

	if v := q.Get("min_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return f, errors.Errorf("invalid min_price %q", v)
		}
		f.MinPrice = d
	}
	if v := q.Get("max_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return f, errors.Errorf("invalid max_price %q", v)
		}
		f.MaxPrice = d
	}
	if v := q.Get("min_rating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, errors.Errorf("invalid min_rating %q", v)
		}
		f.MinRating = rating
	}

	return f, nil
}

func (h *Handler) writeProducts(w http.ResponseWriter, products []catalog.Product) {
	var e jx.Encoder
	e.ArrStart()
	for _, p := range products {
		h.encodeProduct(&e, p)
	}
	e.ArrEnd()
	writeJSON(w, http.StatusOK, &e)
}

func (h *Handler) encodeProduct(e *jx.Encoder, p catalog.Product) {
	e.ObjStart()
	e.FieldStart("id")
	e.Int(p.ID)
	e.FieldStart("name")
	e.Str(p.Name)
	e.FieldStart("price")
	e.Float64(p.Price.Round(2).InexactFloat64())
	e.FieldStart("category")
	e.Str(p.Category)
	e.FieldStart("description")
	e.Str(p.Description)
	e.FieldStart("rating")
	e.Float64(p.Rating)
	e.FieldStart("image")
	e.Str(h.imageURL(p.Image))
	e.FieldStart("featured")
	e.Bool(p.Featured)
	e.ObjEnd()
}
