package tabula

import (
	"context"
	"fmt"

	"github.com/tsawler/tabula/reader"
	"github.com/tsawler/tabula/tables"
	"golang.org/x/sync/errgroup"
)

// FindTablesInDocument opens a PDF and runs the table-finding pipeline over
// every page concurrently, bounded to maxConcurrency workers via
// errgroup. It returns one []tables.Table per page, indexed the same as
// the source document (index 0 is page 1).
//
// Example:
//
//	perPage, err := tabula.FindTablesInDocument("report.pdf", true, 4)
func FindTablesInDocument(path string, extractText bool, maxConcurrency int) ([][]tables.Table, error) {
	return FindTablesInDocumentWithSettings(path, extractText, maxConcurrency, tables.DefaultTfSettings())
}

// FindTablesInDocumentWithSettings is FindTablesInDocument with explicit
// TfSettings instead of the defaults.
func FindTablesInDocumentWithSettings(path string, extractText bool, maxConcurrency int, settings tables.TfSettings) ([][]tables.Table, error) {
	r, err := reader.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	pageCount, err := r.PageCount()
	if err != nil {
		return nil, err
	}

	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}

	// Page fetch and content-stream decoding go through the shared Reader
	// (its object cache and page tree are not safe for concurrent access),
	// so primitive extraction stays sequential; only the per-page
	// table-finding computation below - which touches no shared reader
	// state - is fanned out.
	sources := make([]*tables.PDFPageSource, pageCount)
	for i := 0; i < pageCount; i++ {
		pdfPage, err := r.GetPage(i)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		src, err := tables.NewPDFPageSource(r, pdfPage)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		if err := src.ExtractPrimitives(); err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		sources[i] = src
	}

	result := make([][]tables.Table, pageCount)
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(maxConcurrency)

	for i := 0; i < pageCount; i++ {
		i := i
		g.Go(func() error {
			found, err := tables.FindTables(ctx, sources[i], extractText, settings)
			if err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}
			for j := range found {
				found[j].PageIndex = i + 1
			}
			result[i] = found
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
