package model

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/secmon-lab/ringi/pkg/domain/types"
)

// TicketNotification is the payload handed to a Notifier for one newly
// created ticket.
type TicketNotification struct {
	TicketID      types.TicketID
	ProposalTitle string
	IssueLabel    string // display label such as "2025-03 Board #2", may be empty
	Description   string
	ProposerNames []string
	Deadline      *time.Time
	Attachments   []Attachment
	FormURL       string
	ApproveURL    string
	DenyURL       string
}

// Attachment is a labeled link to supporting material for a proposal
type Attachment struct {
	Label string
	URL   string
}

// AttachmentsFromURLs derives display labels from raw attachment URLs:
// the last path segment, URL-decoded. Generic hosting paths that end in
// "view" (e.g. Drive share links) fall back to a numbered label.
func AttachmentsFromURLs(urls []string) []Attachment {
	attachments := make([]Attachment, 0, len(urls))
	for i, raw := range urls {
		attachments = append(attachments, Attachment{
			Label: attachmentLabel(raw, i+1),
			URL:   raw,
		})
	}
	return attachments
}

func attachmentLabel(raw string, index int) string {
	fallback := fmt.Sprintf("Attachment %d", index)

	cleaned := raw
	if i := strings.IndexAny(cleaned, "?#"); i >= 0 {
		cleaned = cleaned[:i]
	}
	name := cleaned[strings.LastIndex(cleaned, "/")+1:]
	if name == "" || strings.EqualFold(name, "view") {
		return fallback
	}

	if decoded, err := url.PathUnescape(name); err == nil && decoded != "" {
		return decoded
	}
	return name
}
