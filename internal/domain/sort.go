package domain

import "fmt"

// SortOrder selects how the registry ranks search results.
type SortOrder int

// Sort orders, in the order they appear in the sort picker.
const (
	SortRelevance SortOrder = iota
	SortAllTimeDownloads
	SortRecentDownloads
	SortRecentUpdates
	SortNewlyAdded
)

// SortOrders returns the canonical ordered set of sort orders.
func SortOrders() []SortOrder {
	return []SortOrder{
		SortRelevance,
		SortAllTimeDownloads,
		SortRecentDownloads,
		SortRecentUpdates,
		SortNewlyAdded,
	}
}

// Label returns the display name shown in the sort picker and the status line.
func (s SortOrder) Label() string {
	switch s {
	case SortRelevance:
		return "Relevance"
	case SortAllTimeDownloads:
		return "All Time Downloads"
	case SortRecentDownloads:
		return "Recent Downloads"
	case SortRecentUpdates:
		return "Recent Updates"
	case SortNewlyAdded:
		return "Newly Added"
	default:
		return "Relevance"
	}
}

// QueryParam returns the value the crates.io API expects in its `sort`
// query parameter.
func (s SortOrder) QueryParam() string {
	switch s {
	case SortAllTimeDownloads:
		return "downloads"
	case SortRecentDownloads:
		return "recent-downloads"
	case SortRecentUpdates:
		return "recent-updates"
	case SortNewlyAdded:
		return "new"
	default:
		return "relevance"
	}
}

func (s SortOrder) String() string { return s.Label() }

// ParseSortOrder maps a CLI flag value to a SortOrder. It accepts both the
// display label and the wire-level parameter, case does not matter for the
// latter.
func ParseSortOrder(v string) (SortOrder, error) {
	switch v {
	case "relevance", "Relevance", "":
		return SortRelevance, nil
	case "downloads", "All Time Downloads":
		return SortAllTimeDownloads, nil
	case "recent-downloads", "Recent Downloads":
		return SortRecentDownloads, nil
	case "recent-updates", "Recent Updates":
		return SortRecentUpdates, nil
	case "new", "Newly Added":
		return SortNewlyAdded, nil
	}
	return SortRelevance, fmt.Errorf("unknown sort order %q (want one of: relevance, downloads, recent-downloads, recent-updates, new)", v)
}
