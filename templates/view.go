package templates

// Option is one entry of a <select>.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// ItemRow is a material as shown in the list; all values are preformatted.
type ItemRow struct {
	ID        string
	Name      string
	Brand     string
	QtyUnit   string
	PriceText string
	TotalText string
	IsCable   bool
}

// ImportRowError is one problem reported for an uploaded item file.
type ImportRowError struct {
	Row     int
	Field   string
	Message string
}

// ImportReport summarises the last item file upload.
type ImportReport struct {
	FileName  string
	TotalRows int
	Added     int
	Errors    []ImportRowError
}

// EstimateView carries everything the estimate page renders.
type EstimateView struct {
	Title    string
	Subtitle string

	Number      string
	Date        string
	ClientName  string
	ClientEmail string
	Currency    string

	Currencies     []Option
	Units          []Option
	CableStandards []Option

	Items     []ItemRow
	TotalText string

	Import *ImportReport
}

// CanExport reports whether documents can be generated.
func (v EstimateView) CanExport() bool {
	return len(v.Items) > 0
}
