package domain

// ReportDocument is the structured form of a weekly report, before it is
// rendered to text.
type ReportDocument struct {
	Sections []Section
}

// Section is one numbered heading of the report.
// Placeholder is rendered instead of items when Items is empty.
type Section struct {
	Title       string
	Items       []ReportItem
	Lines       []string
	Placeholder string
}

// ReportItem is a lettered entry of a section with its nested subitems.
type ReportItem struct {
	Text     string
	Subitems []string
}
