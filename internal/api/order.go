package api

import (
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/sleekshopper/storefront/internal/order"
	"github.com/sleekshopper/storefront/internal/pricing"
	"github.com/sleekshopper/storefront/internal/store"
)

// checkout places an order from the session's cart. The shipping and payment
// details are validated by the caller before this point; the engine only needs
// the cart.
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.engine.PlaceOrder()
	if err != nil {
		if errors.Is(err, store.ErrEmptyCart) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.internalError(w, r, err)
		return
	}

	var e jx.Encoder
	h.encodeOrder(&e, o)
	writeJSON(w, http.StatusCreated, &e)
}

// listOrders returns the session's placed orders in placement order. A status
// query parameter narrows the list to orders currently at that step.
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	all := true
	var st order.Status
	if v := r.URL.Query().Get("status"); v != "" {
		parsed, err := order.ParseStatus(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		all, st = false, parsed
	}

	s := h.session(w, r)
	s.mu.Lock()
	defer s.mu.Unlock()

	var e jx.Encoder
	e.ArrStart()
	for _, o := range s.engine.Orders() {
		if all || o.Status == st {
			h.encodeOrder(&e, o)
		}
	}
	e.ArrEnd()
	writeJSON(w, http.StatusOK, &e)
}

// getOrder returns a single placed order by id.
func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.engine.OrderByID(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		h.internalError(w, r, err)
		return
	}

	var e jx.Encoder
	h.encodeOrder(&e, o)
	writeJSON(w, http.StatusOK, &e)
}

// advanceOrder moves an order one step forward through the fulfillment
// pipeline: pending, processing, shipped, delivered.
func (h *Handler) advanceOrder(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	s.mu.Lock()
	defer s.mu.Unlock()

	id := r.PathValue("id")
	st, err := s.engine.AdvanceOrder(id)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			writeError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, order.ErrDelivered):
			writeError(w, http.StatusConflict, err.Error())
		default:
			h.internalError(w, r, err)
		}
		return
	}

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("id")
	e.Str(id)
	e.FieldStart("status")
	e.Str(st.String())
	e.ObjEnd()
	writeJSON(w, http.StatusOK, &e)
}

// encodeOrder writes the order with shipping/tax/grand total recomputed from
// its stored subtotal.
func (h *Handler) encodeOrder(e *jx.Encoder, o *order.Order) {
	quote := pricing.NewQuote(o.Total)

	e.ObjStart()
	e.FieldStart("id")
	e.Str(o.ID)
	e.FieldStart("status")
	e.Str(o.Status.String())
	e.FieldStart("createdAt")
	e.Str(o.CreatedAt.Format(time.RFC3339))

	e.FieldStart("items")
	e.ArrStart()
	for _, item := range o.Items {
		e.ObjStart()
		e.FieldStart("product")
		h.encodeProduct(e, item.Product)
		e.FieldStart("quantity")
		e.Int(item.Quantity)
		e.ObjEnd()
	}
	e.ArrEnd()

	encodeQuote(e, quote)
	e.ObjEnd()
}

// encodeQuote writes the four pricing fields into the current object, as raw
// numbers plus a "display" block of currency-tagged strings. Rounding happens
// inside Quote.Display, nowhere earlier.
func encodeQuote(e *jx.Encoder, q pricing.Quote) {
	disp := q.Display()

	e.FieldStart("subtotal")
	e.Float64(disp.Subtotal.Amount.InexactFloat64())
	e.FieldStart("shipping")
	e.Float64(disp.Shipping.Amount.InexactFloat64())
	e.FieldStart("tax")
	e.Float64(disp.Tax.Amount.InexactFloat64())
	e.FieldStart("total")
	e.Float64(disp.Total.Amount.InexactFloat64())

	e.FieldStart("display")
	e.ObjStart()
	e.FieldStart("subtotal")
	e.Str(disp.Subtotal.String())
	e.FieldStart("shipping")
	e.Str(disp.Shipping.String())
	e.FieldStart("tax")
	e.Str(disp.Tax.String())
	e.FieldStart("total")
	e.Str(disp.Total.String())
	e.ObjEnd()
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
