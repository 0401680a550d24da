package tabula

import (
	"context"
	"fmt"

	"github.com/tsawler/tabula/format"
	"github.com/tsawler/tabula/tables"
)

// Tables runs the table-finding pipeline over the Extractor's resolved
// pages and returns one []tables.Table per page, in the fluent style of
// Text()/ToMarkdown(). extractText controls whether cell text is
// populated (4.H) or left empty.
//
// Example:
//
//	perPage, _, err := tabula.Open("report.pdf").Pages(1, 2).Tables(true)
func (e *Extractor) Tables(extractText bool) ([][]tables.Table, []Warning, error) {
	return e.TablesWithSettings(extractText, tables.DefaultTfSettings())
}

// TablesWithSettings is Tables with explicit TfSettings instead of the defaults.
// Only PDF sources expose the raw line/rect/char geometry the pipeline needs;
// DOCX and ODT sources return an error.
func (e *Extractor) TablesWithSettings(extractText bool, settings tables.TfSettings) ([][]tables.Table, []Warning, error) {
	if e.err != nil {
		return nil, e.warnings, e.err
	}
	if e.format != format.PDF {
		return nil, e.warnings, fmt.Errorf("tables: only PDF sources expose raw geometry for table finding, got %s", e.format)
	}
	if err := e.ensureReader(); err != nil {
		return nil, e.warnings, err
	}
	defer e.Close()

	pageIndices, err := e.resolvePages()
	if err != nil {
		return nil, e.warnings, err
	}

	ctx := context.Background()
	result := make([][]tables.Table, len(pageIndices))
	for i, idx := range pageIndices {
		pdfPage, err := e.reader.GetPage(idx)
		if err != nil {
			e.warnings = append(e.warnings, Warning{Page: idx + 1, Message: err.Error()})
			continue
		}
		src, err := tables.NewPDFPageSource(e.reader, pdfPage)
		if err != nil {
			e.warnings = append(e.warnings, Warning{Page: idx + 1, Message: err.Error()})
			continue
		}
		if err := src.ExtractPrimitives(); err != nil {
			e.warnings = append(e.warnings, Warning{Page: idx + 1, Message: err.Error()})
			continue
		}

		found, err := tables.FindTables(ctx, src, extractText, settings)
		if err != nil {
			e.warnings = append(e.warnings, Warning{Page: idx + 1, Message: err.Error()})
			continue
		}
		for j := range found {
			found[j].PageIndex = idx + 1
		}
		result[i] = found
	}
	return result, e.warnings, nil
}
