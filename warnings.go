package tabula

import (
	"fmt"
	"strings"
)

// Warning describes a non-fatal issue encountered while processing a
// document: extraction succeeded, but the result may be imperfect (a
// messy PDF structure, a page that fell back to a weaker strategy, a
// page that was skipped outright). Page is 1-indexed; zero means the
// warning is not specific to one page.
type Warning struct {
	Message string
	Page    int
}

// FormatWarnings renders a slice of warnings as a single line, messages
// separated by "; " and prefixed with "page N: " when page-specific,
// suitable for logging.
//
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", tabula.FormatWarnings(warnings))
//	}
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		if w.Page > 0 {
			lines[i] = fmt.Sprintf("page %d: %s", w.Page, w.Message)
		} else {
			lines[i] = w.Message
		}
	}
	return strings.Join(lines, "; ")
}
