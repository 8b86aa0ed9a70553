package inbox

// Category is the intent an incoming message is routed to.
type Category string

const (
	CategoryDecisionNeeded Category = "decision_needed"
	CategoryDelegate       Category = "delegate"
	CategoryInfoOnly       Category = "info_only"
	CategoryControlCheck   Category = "control_check"
)

// Categories lists every category in classification precedence order.
var Categories = []Category{
	CategoryDecisionNeeded,
	CategoryDelegate,
	CategoryInfoOnly,
	CategoryControlCheck,
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryDecisionNeeded, CategoryDelegate, CategoryInfoOnly, CategoryControlCheck:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// Priority follows the P0 (most urgent) .. P3 scale shared with the task tracker.
type Priority string

const (
	PriorityP0 Priority = "P0"
	PriorityP1 Priority = "P1"
	PriorityP2 Priority = "P2"
	PriorityP3 Priority = "P3"
)

var priorityRank = map[Priority]int{
	PriorityP0: 0,
	PriorityP1: 1,
	PriorityP2: 2,
	PriorityP3: 3,
}

func (p Priority) IsValid() bool {
	_, ok := priorityRank[p]
	return ok
}

// Rank orders priorities for sorting. Unknown values sort with P3.
func (p Priority) Rank() int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return priorityRank[PriorityP3]
}

func (p Priority) String() string {
	return string(p)
}
