package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// ProposalID identifies a proposal record in the record store. The value
// is an opaque store-assigned ID (a Notion page ID in production).
type ProposalID string

// Validate checks if the ProposalID is valid
func (p ProposalID) Validate() error {
	if p == "" {
		return goerr.New("proposal ID cannot be empty")
	}
	return nil
}

// String returns the string representation of ProposalID
func (p ProposalID) String() string {
	return string(p)
}

// MemberID identifies a member record in the record store
type MemberID string

// Validate checks if the MemberID is valid
func (m MemberID) Validate() error {
	if m == "" {
		return goerr.New("member ID cannot be empty")
	}
	return nil
}

// String returns the string representation of MemberID
func (m MemberID) String() string {
	return string(m)
}

// TicketID identifies an approval ticket record in the record store
type TicketID string

// Validate checks if the TicketID is valid
func (t TicketID) Validate() error {
	if t == "" {
		return goerr.New("ticket ID cannot be empty")
	}
	return nil
}

// String returns the string representation of TicketID
func (t TicketID) String() string {
	return string(t)
}
