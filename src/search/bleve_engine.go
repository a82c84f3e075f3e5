package search

import (
	"fmt"
	"strings"

	"stock-dashboard/src/catalog"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
)

const defaultLimit = 20

// stockDoc is the indexed form of a catalog entry. The document ID is the code.
type stockDoc struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// BleveEngine is an in-memory full-text index over the catalog.
type BleveEngine struct {
	index   bleve.Index
	catalog *catalog.Catalog
	logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewBleveEngine(cat *catalog.Catalog, log *logger.Logger) (*BleveEngine, error) {
	if log == nil {
		log = logger.NewLogger(nil, "Search")
	}

	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	batch := index.NewBatch()
	for _, s := range cat.All() {
		if err := batch.Index(s.Code, stockDoc{Code: s.Code, Name: s.Name}); err != nil {
			return nil, fmt.Errorf("failed to add %s to batch: %w", s.Code, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		return nil, fmt.Errorf("failed to execute batch: %w", err)
	}
	log.Info("Indexed %d stocks", cat.Len())

	return &BleveEngine{index: index, catalog: cat, logger: log}, nil
}

// -----------------------------------------------------------------------------

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	stockMapping := bleve.NewDocumentMapping()

	codeField := bleve.NewTextFieldMapping()
	codeField.Analyzer = keyword.Name
	codeField.Store = true
	stockMapping.AddFieldMappingsAt("code", codeField)

	nameField := bleve.NewTextFieldMapping()
	nameField.Analyzer = standard.Name
	nameField.Store = true
	stockMapping.AddFieldMappingsAt("name", nameField)

	indexMapping.DefaultMapping = stockMapping
	return indexMapping
}

// -----------------------------------------------------------------------------

// Search matches query against codes (prefix) and names (term or substring).
// Hits are ranked by score and returned as {code, name} pairs.
func (e *BleveEngine) Search(q string, limit int) []models.MSearchResult {
	q = strings.TrimSpace(q)
	if q == "" {
		return []models.MSearchResult{}
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	codePrefix := bleve.NewPrefixQuery(q)
	codePrefix.SetField("code")
	codePrefix.SetBoost(5.0)

	nameMatch := bleve.NewMatchQuery(q)
	nameMatch.SetField("name")
	nameMatch.SetBoost(3.0)

	queries := []query.Query{codePrefix, nameMatch}
	if term := sanitizeWildcard(strings.ToLower(q)); term != "" {
		nameWildcard := bleve.NewWildcardQuery("*" + term + "*")
		nameWildcard.SetField("name")
		nameWildcard.SetBoost(1.5)
		queries = append(queries, nameWildcard)
	}

	req := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(queries...))
	req.Size = limit

	res, err := e.index.Search(req)
	if err != nil {
		e.logger.Warning("Search error for %q: %v", q, err)
		return []models.MSearchResult{}
	}

	results := make([]models.MSearchResult, 0, len(res.Hits))
	for _, hit := range res.Hits {
		if stock, ok := e.catalog.Lookup(hit.ID); ok {
			results = append(results, stock.ToSearchResult())
		}
	}
	return results
}

// -----------------------------------------------------------------------------

func (e *BleveEngine) Close() error {
	return e.index.Close()
}

// -----------------------------------------------------------------------------

// sanitizeWildcard strips wildcard metacharacters from user input.
func sanitizeWildcard(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '*', '?', '\\':
			return -1
		}
		return r
	}, s)
}
