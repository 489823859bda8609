// Package catalog serves the shops and products offered by the storefront.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vapeonx/storefront/models"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var (
	ErrShopNotFound    = errors.New("shop not found")
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidCatalog  = errors.New("invalid catalog")
)

type document struct {
	Shops []models.Shop `yaml:"shops"`
}

// Catalog is an immutable, validated set of shops. It is safe for
// concurrent use.
type Catalog struct {
	shops    []models.Shop
	bySlug   map[string]int
	products map[string]models.Product
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// Load parses a YAML catalog document.
func Load(r io.Reader) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	c := &Catalog{
		shops:    doc.Shops,
		bySlug:   make(map[string]int, len(doc.Shops)),
		products: make(map[string]models.Product),
	}
	for i := range c.shops {
		shop := &c.shops[i]
		if shop.Slug == "" || shop.Name == "" {
			return nil, fmt.Errorf("%w: shop %d needs a slug and a name", ErrInvalidCatalog, i)
		}
		if _, dup := c.bySlug[shop.Slug]; dup {
			return nil, fmt.Errorf("%w: duplicate shop %q", ErrInvalidCatalog, shop.Slug)
		}
		c.bySlug[shop.Slug] = i

		for j := range shop.Products {
			p := &shop.Products[j]
			if p.ID == "" || p.Name == "" {
				return nil, fmt.Errorf("%w: product %d of %q needs an id and a name", ErrInvalidCatalog, j, shop.Slug)
			}
			if p.Price < 0 || p.Stock < 0 {
				return nil, fmt.Errorf("%w: product %q has a negative price or stock", ErrInvalidCatalog, p.ID)
			}
			if _, dup := c.products[p.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate product %q", ErrInvalidCatalog, p.ID)
			}
			if p.Img == "" {
				p.Img = models.PlaceholderImage
			}
			p.Shop = shop.Slug
			c.products[p.ID] = *p
		}
	}
	return c, nil
}

// Shops lists every shop without its product list.
func (c *Catalog) Shops() []models.Shop {
	out := make([]models.Shop, 0, len(c.shops))
	for _, s := range c.shops {
		s.Products = nil
		out = append(out, s)
	}
	return out
}

// Shop returns one shop with its products.
func (c *Catalog) Shop(slug string) (*models.Shop, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrShopNotFound, slug)
	}
	shop := c.shops[i]
	shop.Products = append([]models.Product(nil), shop.Products...)
	return &shop, nil
}

// Products lists the products of a shop, or of every shop when slug is empty.
func (c *Catalog) Products(slug string) ([]models.Product, error) {
	if slug != "" {
		shop, err := c.Shop(slug)
		if err != nil {
			return nil, err
		}
		return shop.Products, nil
	}

	out := []models.Product{}
	for _, s := range c.shops {
		out = append(out, s.Products...)
	}
	return out, nil
}

// Product returns one product by id.
func (c *Catalog) Product(id string) (*models.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return &p, nil
}
