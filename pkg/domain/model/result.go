package model

import (
	"time"

	"github.com/secmon-lab/ringi/pkg/domain/types"
)

// IssueResult aggregates the outcome of a ticket issuance run. Notifier
// failures are collected here rather than raised so one recipient cannot
// block the others.
type IssueResult struct {
	ProposalID     types.ProposalID
	Created        []types.TicketID
	Skipped        []types.MemberID
	NotifyFailures []NotifyFailure
}

// NotifyFailure records a best-effort notification that did not go
// through. The ticket itself was created; re-running issuance will skip
// the ticket and the caller decides whether to retry delivery.
type NotifyFailure struct {
	MemberID types.MemberID
	TicketID types.TicketID
	Err      error
}

// DecisionResult is the outcome of recording a decision. AlreadyDecided
// reports that the write-once invariant was respected: the carried
// values are the original ones and no write occurred.
type DecisionResult struct {
	TicketID       types.TicketID
	Decision       types.Decision
	Comment        string
	DecidedAt      time.Time
	AlreadyDecided bool
}

// SweepResult summarizes one pending-proposal sweep
type SweepResult struct {
	Processed []types.ProposalID
	Failed    []SweepFailure
}

// SweepFailure records a proposal the sweep could not process; the
// proposal stays pending and is retried on the next sweep.
type SweepFailure struct {
	ProposalID types.ProposalID
	Err        error
}
