package gmail

import (
	"encoding/base64"
	"mime"
	"strings"

	"google.golang.org/api/gmail/v1"
)

func extractHeader(msg *gmail.Message, name string) string {
	if msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// extractBody returns the first text/plain body, searching nested parts.
func extractBody(msg *gmail.Message) string {
	if msg.Payload == nil {
		return ""
	}
	return partBody(msg.Payload, true)
}

func partBody(p *gmail.MessagePart, top bool) string {
	if p.Body != nil && p.Body.Data != "" && (top && len(p.Parts) == 0 || p.MimeType == "text/plain") {
		return decodeData(p.Body.Data)
	}
	for _, child := range p.Parts {
		if body := partBody(child, false); body != "" {
			return body
		}
	}
	return ""
}

// decodeData accepts both padded and unpadded base64url, Gmail uses either.
func decodeData(data string) string {
	if d, err := base64.URLEncoding.DecodeString(data); err == nil {
		return string(d)
	}
	d, _ := base64.RawURLEncoding.DecodeString(data)
	return string(d)
}

func extractMessageIDs(histories []*gmail.History) []string {
	var ids []string
	for _, h := range histories {
		for _, added := range h.MessagesAdded {
			if added.Message != nil && !isDraft(added.Message) {
				ids = append(ids, added.Message.Id)
			}
		}
	}
	return ids
}

func isDraft(msg *gmail.Message) bool {
	for _, labelID := range msg.LabelIds {
		if labelID == "DRAFT" {
			return true
		}
	}
	return false
}

// encodeHeader applies RFC 2047 encoding to non-ASCII header values.
func encodeHeader(v string) string {
	return mime.BEncoding.Encode("UTF-8", v)
}
