package api

import (
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/sleekshopper/storefront/internal/cart"
	"github.com/sleekshopper/storefront/internal/catalog"
	"github.com/sleekshopper/storefront/internal/store"
)

// cartItemRequest is the body of add and update cart calls.
type cartItemRequest struct {
	ProductID int
	Quantity  int
	HasQty    bool
}

func decodeCartItemRequest(body []byte) (cartItemRequest, error) {
	req := cartItemRequest{}
	d := jx.DecodeBytes(body)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "productId":
			v, err := d.Int()
			req.ProductID = v
			return err
		case "quantity":
			v, err := d.Int()
			req.Quantity = v
			req.HasQty = true
			return err
		default:
			return d.Skip()
		}
	})
	return req, err
}

// getCart returns the session's cart contents and pricing breakdown.
func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	s.mu.Lock()
	defer s.mu.Unlock()

	h.writeCart(w, http.StatusOK, s.engine, "")
}

// addCartItem adds a product to the cart. A missing quantity defaults to 1.
// The response carries the add notification for the caller to display.
func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body")
		return
	}
	req, err := decodeCartItemRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !req.HasQty {
		req.Quantity = 1
	}

	s := h.session(w, r)
	s.mu.Lock()
	defer s.mu.Unlock()

	added, err := s.engine.AddToCart(req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			writeError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, cart.ErrInvalidQuantity):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			h.internalError(w, r, err)
		}
		return
	}

	h.writeCart(w, http.StatusOK, s.engine, added.Message())
}

// updateCartItem replaces a line item's quantity. Quantities below 1 are
// rejected; updating a product not in the cart is a no-op.
func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "product id must be an integer")
		return
	}

	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body")
		return
	}
	req, err := decodeCartItemRequest(body)
	if err != nil || !req.HasQty {
		writeError(w, http.StatusBadRequest, "quantity is required")
		return
	}

	s := h.session(w, r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.SetCartQuantity(id, req.Quantity); err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.internalError(w, r, err)
		return
	}

	h.writeCart(w, http.StatusOK, s.engine, "")
}

// removeCartItem deletes a line item; removing an absent product is a no-op.
func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "product id must be an integer")
		return
	}

	s := h.session(w, r)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.RemoveFromCart(id)
	h.writeCart(w, http.StatusOK, s.engine, "")
}

// clearCart removes every line item.
func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.ClearCart()
	h.writeCart(w, http.StatusOK, s.engine, "")
}

// writeCart encodes the cart body: line items, the pricing quote, the
// remaining amount to free shipping, and an optional notification message.
func (h *Handler) writeCart(w http.ResponseWriter, status int, engine *store.Engine, notification string) {
	items := engine.CartItems()
	quote := engine.Quote()

	var e jx.Encoder
	e.ObjStart()

	e.FieldStart("items")
	e.ArrStart()
	for _, item := range items {
		e.ObjStart()
		e.FieldStart("product")
		h.encodeProduct(&e, item.Product)
		e.FieldStart("quantity")
		e.Int(item.Quantity)
		e.FieldStart("lineTotal")
		lineTotal := item.Product.Price.Mul(decimalFromInt(item.Quantity))
		e.Float64(lineTotal.Round(2).InexactFloat64())
		e.ObjEnd()
	}
	e.ArrEnd()

	encodeQuote(&e, quote)
	e.FieldStart("remainingForFreeShipping")
	e.Float64(quote.RemainingForFreeShipping().Round(2).InexactFloat64())

	if notification != "" {
		e.FieldStart("notification")
		e.Str(notification)
	}
	e.ObjEnd()

	writeJSON(w, status, &e)
}
