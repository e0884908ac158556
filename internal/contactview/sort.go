package contactview

// SortOption selects the display ordering of a contact list.
type SortOption string

const (
	SortNameAsc  SortOption = "name-asc"
	SortNameDesc SortOption = "name-desc"
	SortDateAsc  SortOption = "date-asc"
	SortDateDesc SortOption = "date-desc"
)

// cycleOrder is the sequence the single toggle control walks through.
var cycleOrder = []SortOption{SortNameAsc, SortNameDesc, SortDateDesc, SortDateAsc}

// Cycle advances to the next sort option. Four presses return to the start.
func Cycle(s SortOption) SortOption {
	for i, opt := range cycleOrder {
		if opt == s {
			return cycleOrder[(i+1)%len(cycleOrder)]
		}
	}
	return cycleOrder[0]
}

// Parse maps a query-string value to a SortOption. Unknown or empty input
// falls back to the starting mode, name ascending.
func Parse(s string) SortOption {
	switch SortOption(s) {
	case SortNameAsc, SortNameDesc, SortDateAsc, SortDateDesc:
		return SortOption(s)
	default:
		return SortNameAsc
	}
}

// Label returns the toggle-button caption for a sort option.
func (s SortOption) Label() string {
	switch s {
	case SortNameDesc:
		return "Name Z-A"
	case SortDateAsc:
		return "Oldest First"
	case SortDateDesc:
		return "Newest First"
	default:
		return "Name A-Z"
	}
}
