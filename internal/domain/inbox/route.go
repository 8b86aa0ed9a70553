// Package inbox classifies incoming messages into a fixed set of intents and
// drafts a canned reply for each.
//
// Everything here is pure: no I/O and no shared mutable state, so Route may be
// called from any number of goroutines.
package inbox

// DefaultSender is used when the caller does not name the sender.
const DefaultSender = "Unknown"

// PreviewLength is the number of characters echoed back in MessagePreview.
const PreviewLength = 200

// Result is the outcome of routing one message.
type Result struct {
	Classification    Category `json:"classification"`
	Priority          Priority `json:"priority"`
	Sender            string   `json:"sender"`
	RecommendedAction string   `json:"recommended_action"`
	DraftResponse     string   `json:"draft_response"`
	MessagePreview    string   `json:"message_preview"`
}

// Route classifies message and drafts a response addressed to sender.
func Route(message, sender string) Result {
	category := Classify(message)
	draft := DraftFor(category, sender)
	return Result{
		Classification:    category,
		Priority:          draft.Priority,
		Sender:            sender,
		RecommendedAction: draft.RecommendedAction,
		DraftResponse:     draft.Response,
		MessagePreview:    Preview(message, PreviewLength),
	}
}

// Preview returns the first n characters of s, counted in runes.
func Preview(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
