// Package catalog holds the immutable product catalog loaded once at startup.
package catalog

import (
	"bytes"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist. Absence is
// a normal outcome for catalog lookups, not a fault.
var ErrNotFound = errors.New("product not found")

// Product represents a catalog item available for purchase. Products are
// created at load time and never mutated afterwards.
type Product struct {
	ID          int
	Name        string
	Price       decimal.Decimal
	Category    string
	Description string
	Rating      float64
	Image       string
	Featured    bool
}

// Catalog is the fixed set of purchasable products for the process lifetime.
// All accessors preserve load order.
type Catalog struct {
	products   []Product
	byID       map[int]int
	categories []string
}

// productJSON mirrors the seed file layout.
type productJSON struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Rating      float64         `json:"rating"`
	Image       string          `json:"image"`
	Featured    bool            `json:"featured"`
}

// Load decodes a gzipped JSON product seed into a Catalog.
func Load(seed []byte) (*Catalog, error) {
	zr, err := pgzip.NewReader(bytes.NewReader(seed))
	if err != nil {
		return nil, errors.Wrap(err, "open seed")
	}
	defer zr.Close()

	var records []productJSON
	if err := json.NewDecoder(zr).Decode(&records); err != nil {
		return nil, errors.Wrap(err, "parse seed JSON")
	}

	products := make([]Product, len(records))
	for i, r := range records {
		products[i] = Product{
			ID:          r.ID,
			Name:        r.Name,
			Price:       r.Price,
			Category:    r.Category,
			Description: r.Description,
			Rating:      r.Rating,
			Image:       r.Image,
			Featured:    r.Featured,
		}
	}

	return New(products)
}

// New builds a Catalog from the given products, validating every record.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	seen := make(map[string]bool)

	for i, p := range products {
		if err := validate(p); err != nil {
			return nil, errors.Wrapf(err, "product %d", p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, errors.Errorf("duplicate product id %d", p.ID)
		}
		c.products[i] = p
		c.byID[p.ID] = i

		if !seen[p.Category] {
			seen[p.Category] = true
			c.categories = append(c.categories, p.Category)
		}
	}

	return c, nil
}

func validate(p Product) error {
	switch {
	case p.ID <= 0:
		return errors.New("id must be positive")
	case p.Name == "":
		return errors.New("name is required")
	case p.Category == "":
		return errors.New("category is required")
	case p.Price.IsNegative():
		return errors.New("price must not be negative")
	case p.Rating < 0 || p.Rating > 5:
		return errors.Errorf("rating %v outside [0, 5]", p.Rating)
	}
	return nil
}

// All returns every product in load order.
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// ByID returns the product with the given id, or ErrNotFound.
func (c *Catalog) ByID(id int) (Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return c.products[i], nil
}

// Featured returns the products flagged for the storefront's featured section,
// in load order.
func (c *Catalog) Featured() []Product {
	var out []Product
	for _, p := range c.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct product categories in first-seen order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}
