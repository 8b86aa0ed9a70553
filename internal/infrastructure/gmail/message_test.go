package gmail

import (
	"encoding/base64"
	"strings"
	"testing"

	"google.golang.org/api/gmail/v1"

	"inboxassist/internal/domain/email"
)

func b64(s string) string { return base64.URLEncoding.EncodeToString([]byte(s)) }

func TestExtractHeader(t *testing.T) {
	msg := &gmail.Message{Payload: &gmail.MessagePart{
		Headers: []*gmail.MessagePartHeader{
			{Name: "From", Value: "Ivan <ivan@example.com>"},
			{Name: "subject", Value: "Бюджет"},
		},
	}}

	if got := extractHeader(msg, "From"); got != "Ivan <ivan@example.com>" {
		t.Errorf("From = %q", got)
	}
	if got := extractHeader(msg, "Subject"); got != "Бюджет" {
		t.Errorf("Subject = %q, header names are case-insensitive", got)
	}
	if got := extractHeader(msg, "To"); got != "" {
		t.Errorf("To = %q, want empty", got)
	}
	if got := extractHeader(&gmail.Message{}, "From"); got != "" {
		t.Errorf("nil payload = %q", got)
	}
}

func TestExtractBody(t *testing.T) {
	cases := []struct {
		name string
		msg  *gmail.Message
		want string
	}{
		{
			name: "single part",
			msg: &gmail.Message{Payload: &gmail.MessagePart{
				MimeType: "text/plain",
				Body:     &gmail.MessagePartBody{Data: b64("прошу утвердить")},
			}},
			want: "прошу утвердить",
		},
		{
			name: "multipart prefers text/plain",
			msg: &gmail.Message{Payload: &gmail.MessagePart{
				MimeType: "multipart/alternative",
				Parts: []*gmail.MessagePart{
					{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: b64("<p>html</p>")}},
					{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: b64("plain")}},
				},
			}},
			want: "plain",
		},
		{
			name: "nested",
			msg: &gmail.Message{Payload: &gmail.MessagePart{
				MimeType: "multipart/mixed",
				Parts: []*gmail.MessagePart{{
					MimeType: "multipart/alternative",
					Parts: []*gmail.MessagePart{
						{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: b64("deep")}},
					},
				}},
			}},
			want: "deep",
		},
		{
			name: "unpadded data",
			msg: &gmail.Message{Payload: &gmail.MessagePart{
				Body: &gmail.MessagePartBody{Data: base64.RawURLEncoding.EncodeToString([]byte("ab"))},
			}},
			want: "ab",
		},
		{name: "no payload", msg: &gmail.Message{}, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractBody(tc.msg); got != tc.want {
				t.Errorf("extractBody = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractMessageIDsSkipsDrafts(t *testing.T) {
	histories := []*gmail.History{
		{MessagesAdded: []*gmail.HistoryMessageAdded{
			{Message: &gmail.Message{Id: "a", LabelIds: []string{"INBOX"}}},
			{Message: &gmail.Message{Id: "d", LabelIds: []string{"DRAFT"}}},
		}},
		{MessagesAdded: []*gmail.HistoryMessageAdded{
			{Message: &gmail.Message{Id: "b"}},
			{Message: nil},
		}},
	}

	got := extractMessageIDs(histories)
	if strings.Join(got, ",") != "a,b" {
		t.Errorf("ids = %v, want [a b]", got)
	}
}

func TestEncodeDraft(t *testing.T) {
	raw, err := base64.URLEncoding.DecodeString(encodeDraft("ivan@example.com", "Re: Бюджет", "Иван, принято."))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	s := string(raw)
	if !strings.HasPrefix(s, "To: ivan@example.com\r\n") {
		t.Errorf("missing To header: %q", s)
	}
	if !strings.Contains(s, "Subject: =?UTF-8?b?") {
		t.Errorf("subject not RFC 2047 encoded: %q", s)
	}
	if !strings.HasSuffix(s, "\r\n\r\nИван, принято.") {
		t.Errorf("body not appended: %q", s)
	}
}

func TestEveryLabelHasGmailName(t *testing.T) {
	for _, l := range email.Labels {
		if labelNames[l] == "" {
			t.Errorf("label %q has no Gmail name", l)
		}
	}
}
