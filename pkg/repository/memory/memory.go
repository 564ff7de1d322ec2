package memory

import (
	"github.com/secmon-lab/ringi/pkg/domain/interfaces"
	"github.com/secmon-lab/ringi/pkg/domain/model"
	"github.com/secmon-lab/ringi/pkg/domain/types"
)

// Sentinel errors shared by all collections in this backend
var (
	ErrNotFound       = types.ErrNotFound
	ErrAlreadyDecided = types.ErrAlreadyDecided
)

// Memory is an in-memory repository for development and tests
type Memory struct {
	proposal *proposalRepository
	member   *memberRepository
	ticket   *ticketRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		proposal: newProposalRepository(),
		member:   newMemberRepository(),
		ticket:   newTicketRepository(),
	}
}

func (m *Memory) Proposal() interfaces.ProposalRepository {
	return m.proposal
}

func (m *Memory) Member() interfaces.MemberRepository {
	return m.member
}

func (m *Memory) Ticket() interfaces.TicketRepository {
	return m.ticket
}

func (m *Memory) Close() error {
	return nil
}

// PutProposal seeds a proposal. Proposals are created externally in
// production; tests and development fixtures use this seam.
func (m *Memory) PutProposal(p *model.Proposal) {
	m.proposal.Put(p)
}

// PutMember seeds a member record
func (m *Memory) PutMember(member *model.Member) {
	m.member.Put(member)
}
