// Package rank orders bundle files by relevance to a query, using an
// in-memory bleve full-text index over file paths and contents. With no
// query the input order passes through untouched.
package rank

import (
	"context"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Document is one rankable file.
type Document struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Ranker scores documents against a relevance query.
type Ranker struct {
	index bleve.Index
}

// NewRanker builds the in-memory index over docs.
func NewRanker(ctx context.Context, docs []Document) (*Ranker, error) {
	index, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create rank index: %w", err)
	}

	batch := index.NewBatch()
	for _, d := range docs {
		if err := batch.Index(d.Path, d); err != nil {
			index.Close()
			return nil, err
		}
	}
	if err := index.Batch(batch); err != nil {
		index.Close()
		return nil, fmt.Errorf("failed to index documents: %w", err)
	}

	return &Ranker{index: index}, nil
}

// buildMapping indexes content with the standard analyzer and paths with
// the keyword analyzer so exact path terms still match.
func buildMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()

	contentMapping := bleve.NewTextFieldMapping()
	contentMapping.Analyzer = "standard"
	contentMapping.Store = false
	contentMapping.Index = true

	pathMapping := bleve.NewTextFieldMapping()
	pathMapping.Analyzer = "keyword"
	pathMapping.Store = true
	pathMapping.Index = true

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("content", contentMapping)
	docMapping.AddFieldMappingsAt("path", pathMapping)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// Rank returns paths ordered by relevance to queryStr: matching documents
// first by descending score, then everything that did not match in the
// original order. An empty query returns paths unchanged.
func (r *Ranker) Rank(ctx context.Context, queryStr string, paths []string) ([]string, error) {
	if queryStr == "" {
		return paths, nil
	}

	query := bleve.NewQueryStringQuery(queryStr)
	req := bleve.NewSearchRequest(query)
	req.Size = len(paths)

	res, err := r.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("rank query failed: %w", err)
	}

	ranked := make([]string, 0, len(paths))
	matched := make(map[string]bool, len(res.Hits))
	for _, hit := range res.Hits {
		matched[hit.ID] = true
		ranked = append(ranked, hit.ID)
	}
	for _, p := range paths {
		if !matched[p] {
			ranked = append(ranked, p)
		}
	}
	return ranked, nil
}

// Close releases the index.
func (r *Ranker) Close() error { return r.index.Close() }
