package catalog

import (
	"fmt"
	"os"
	"strings"

	"stock-dashboard/src/helpers"
	"stock-dashboard/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Catalog is the fixed, ordered set of stocks known for the session.
// It is read-only after construction and safe for concurrent use.
type Catalog struct {
	stocks []models.MStock
	index  map[string]int
}

// -----------------------------------------------------------------------------

// New builds a catalog from stocks, keeping their order. Codes must be
// non-empty and unique.
func New(stocks []models.MStock) (*Catalog, error) {
	c := &Catalog{
		stocks: make([]models.MStock, len(stocks)),
		index:  make(map[string]int, len(stocks)),
	}
	copy(c.stocks, stocks)

	for i, s := range c.stocks {
		code := strings.TrimSpace(s.Code)
		if code == "" {
			return nil, helpers.NewValidationError("stock %d has an empty code", i)
		}
		if _, dup := c.index[code]; dup {
			return nil, helpers.NewValidationError("duplicate stock code %s", code)
		}
		c.stocks[i].Code = code
		c.index[code] = i
	}
	return c, nil
}

// -----------------------------------------------------------------------------

// LoadFile reads a YAML list of stocks.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog '%s': %w", path, err)
	}

	var doc struct {
		Stocks []models.MStock `yaml:"stocks"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(doc.Stocks)
}

// -----------------------------------------------------------------------------

// All returns a copy of the catalog in order.
func (c *Catalog) All() []models.MStock {
	out := make([]models.MStock, len(c.stocks))
	copy(out, c.stocks)
	return out
}

// -----------------------------------------------------------------------------

// First returns the first catalog entry, false when the catalog is empty.
func (c *Catalog) First() (models.MStock, bool) {
	if len(c.stocks) == 0 {
		return models.MStock{}, false
	}
	return c.stocks[0], true
}

// -----------------------------------------------------------------------------

// Lookup resolves a code against the catalog.
func (c *Catalog) Lookup(code string) (models.MStock, bool) {
	i, ok := c.index[code]
	if !ok {
		return models.MStock{}, false
	}
	return c.stocks[i], true
}

// -----------------------------------------------------------------------------

func (c *Catalog) Len() int {
	return len(c.stocks)
}

// -----------------------------------------------------------------------------

func (c *Catalog) Codes() []string {
	codes := make([]string, len(c.stocks))
	for i, s := range c.stocks {
		codes[i] = s.Code
	}
	return codes
}
