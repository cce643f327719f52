package domain

// GroupCount is one slice of a grouped series (chart segment).
type GroupCount struct {
	Name  string
	Count int
}

// AggregateStats is the derived, stateless summary recomputed per filter
// cycle. AvgResolutionHours is a formatted string with one decimal ("0" when
// no ticket qualifies), matching what the presentation layer renders.
type AggregateStats struct {
	Total      int
	Resolved   int
	Pending    int
	Open       int
	InProgress int
	OnHold     int
	Closed     int

	AvgResolutionHours string

	ByPriority []GroupCount
	ByStatus   []GroupCount
	ByReason   []GroupCount
}
