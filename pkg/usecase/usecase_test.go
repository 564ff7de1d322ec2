package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/secmon-lab/ringi/pkg/domain/model"
	"github.com/secmon-lab/ringi/pkg/domain/types"
	"github.com/secmon-lab/ringi/pkg/repository/memory"
)

type push struct {
	ChannelID    string
	Notification *model.TicketNotification
}

// recordNotifier captures pushes and can be told to fail per channel
type recordNotifier struct {
	mu      sync.Mutex
	pushes  []push
	failFor map[string]error
}

func (n *recordNotifier) Notify(ctx context.Context, channelID string, notification *model.TicketNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err, ok := n.failFor[channelID]; ok {
		return err
	}
	n.pushes = append(n.pushes, push{ChannelID: channelID, Notification: notification})
	return nil
}

func (n *recordNotifier) sent() []push {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]push(nil), n.pushes...)
}

func newProposal(id string, created time.Time, audience types.AudienceTarget, category string) *model.Proposal {
	return &model.Proposal{
		ID:             types.ProposalID(id),
		Title:          "Proposal " + id,
		AudienceTarget: audience,
		Category:       category,
		CreatedAt:      created,
		SendStatus:     types.SendStatusPending,
	}
}

func newDirector(id, channelID string) *model.Member {
	return &model.Member{
		ID:                    types.MemberID(id),
		DisplayName:           "Member " + id,
		IsBoardDirector:       true,
		NotificationChannelID: channelID,
		ServiceStatus:         types.ServiceStatusProduction,
	}
}

func seedRepo(proposals []*model.Proposal, members []*model.Member) *memory.Memory {
	repo := memory.New()
	for _, p := range proposals {
		repo.PutProposal(p)
	}
	for _, m := range members {
		repo.PutMember(m)
	}
	return repo
}
