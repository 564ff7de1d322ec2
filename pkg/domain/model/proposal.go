package model

import (
	"time"

	"github.com/secmon-lab/ringi/pkg/domain/types"
)

// CategoryKeyNone is the shared bucket key for proposals without a
// category. Uncategorized proposals share one sequence within their
// (month, audience) bucket instead of failing allocation.
const CategoryKeyNone = "__uncategorized__"

// Proposal is a decision item requiring approval from a defined audience.
// Created externally in the record store; this service only assigns the
// issue number and the send status.
type Proposal struct {
	ID             types.ProposalID
	Title          string
	Description    string
	AudienceTarget types.AudienceTarget
	Category       string // optional classification key, empty is valid
	CreatedAt      time.Time
	IssueNumber    int // 0 means not yet assigned
	SendStatus     types.SendStatus
	Deadline       *time.Time
	ProposerNames  []string
	AttachmentURLs []string
}

// HasIssueNumber reports whether a sequence number has been assigned
func (p *Proposal) HasIssueNumber() bool {
	return p.IssueNumber > 0
}

// CategoryKey returns the category bucket component, substituting the
// shared sentinel when the category is absent.
func (p *Proposal) CategoryKey() string {
	if p.Category == "" {
		return CategoryKeyNone
	}
	return p.Category
}

// Bucket derives the sequence bucket from the proposal. CreatedAt is
// interpreted in UTC so the month boundary does not depend on the host
// timezone.
func (p *Proposal) Bucket() SequenceBucket {
	created := p.CreatedAt.UTC()
	return SequenceBucket{
		Year:     created.Year(),
		Month:    created.Month(),
		Audience: p.AudienceTarget,
		Category: p.CategoryKey(),
	}
}

// SequenceBucket scopes sequential issue numbering: proposals sharing a
// bucket form one contiguous sequence starting at 1.
type SequenceBucket struct {
	Year     int
	Month    time.Month
	Audience types.AudienceTarget
	Category string
}

// MonthRange returns the UTC start (inclusive) and end (exclusive) of the
// bucket's calendar month, for range queries against the record store.
func (b SequenceBucket) MonthRange() (time.Time, time.Time) {
	start := time.Date(b.Year, b.Month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
