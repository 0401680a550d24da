package tables

// ToMarkdown renders the table as GitHub-flavored markdown, treating the
// first row as the header row.
func (t Table) ToMarkdown() string {
	return toModelTable(t).ToMarkdown()
}

// ToCSV renders the table as CSV.
func (t Table) ToCSV() string {
	return toModelTable(t).ToCSV()
}

// ToHTML renders the table as an HTML <table> element.
func (t Table) ToHTML() string {
	return toModelTable(t).ToHTML()
}
