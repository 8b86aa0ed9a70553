package email

import "inboxassist/internal/domain/inbox"

type Label string

const (
	LabelDecisionNeeded Label = "decision_needed"
	LabelDelegate       Label = "delegate"
	LabelInfoOnly       Label = "info_only"
	LabelControlCheck   Label = "control_check"
)

// Labels lists every label the mailbox must carry.
var Labels = []Label{LabelDecisionNeeded, LabelDelegate, LabelInfoOnly, LabelControlCheck}

// LabelFor maps a routing category onto its mailbox label.
func LabelFor(c inbox.Category) Label {
	switch c {
	case inbox.CategoryDecisionNeeded:
		return LabelDecisionNeeded
	case inbox.CategoryDelegate:
		return LabelDelegate
	case inbox.CategoryControlCheck:
		return LabelControlCheck
	}
	return LabelInfoOnly
}

func (l Label) IsValid() bool {
	switch l {
	case LabelDecisionNeeded, LabelDelegate, LabelInfoOnly, LabelControlCheck:
		return true
	}
	return false
}

func (l Label) String() string {
	return string(l)
}
