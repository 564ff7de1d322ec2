package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ringi/pkg/domain/model"
	"github.com/secmon-lab/ringi/pkg/domain/types"
	"github.com/secmon-lab/ringi/pkg/repository/memory"
)

func seedProposal(repo *memory.Memory, id types.ProposalID, created time.Time, audience types.AudienceTarget, category string) {
	repo.PutProposal(&model.Proposal{
		ID:             id,
		Title:          "Proposal " + string(id),
		AudienceTarget: audience,
		Category:       category,
		CreatedAt:      created,
	})
}

func TestProposalRepositoryGet(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	seedProposal(repo, "p1", created, types.AudienceBoardOfDirectors, "finance")

	got, err := repo.Proposal().Get(ctx, "p1")
	gt.NoError(t, err)
	gt.Value(t, got.ID).Equal(types.ProposalID("p1"))
	gt.Value(t, got.Category).Equal("finance")
	gt.Value(t, got.CreatedAt).Equal(created)

	_, err = repo.Proposal().Get(ctx, "missing")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
}

func TestProposalRepositoryListByMonth(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	march := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	seedProposal(repo, "in-month", march, types.AudienceBoardOfDirectors, "finance")
	seedProposal(repo, "other-category", march, types.AudienceBoardOfDirectors, "legal")
	seedProposal(repo, "other-audience", march, types.AudienceGeneralMembers, "finance")
	seedProposal(repo, "prev-month", march.AddDate(0, -1, 0), types.AudienceBoardOfDirectors, "finance")
	seedProposal(repo, "next-month", march.AddDate(0, 1, 0), types.AudienceBoardOfDirectors, "finance")

	// Month boundaries are half-open: first instant in, first instant of
	// the next month out.
	seedProposal(repo, "month-start", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), types.AudienceBoardOfDirectors, "finance")
	seedProposal(repo, "month-end", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), types.AudienceBoardOfDirectors, "finance")

	bucket := model.SequenceBucket{
		Year:     2025,
		Month:    time.March,
		Audience: types.AudienceBoardOfDirectors,
		Category: "finance",
	}
	got, err := repo.Proposal().ListByMonth(ctx, bucket)
	gt.NoError(t, err)

	ids := make(map[types.ProposalID]bool)
	for _, p := range got {
		ids[p.ID] = true
	}
	// Category filtering is the caller's responsibility, so the sibling
	// category stays in the result.
	gt.Value(t, ids).Equal(map[types.ProposalID]bool{
		"in-month":       true,
		"other-category": true,
		"month-start":    true,
	})
}

func TestProposalRepositoryListPending(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	created := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	repo.PutProposal(&model.Proposal{
		ID:             "pending",
		AudienceTarget: types.AudienceBoardOfDirectors,
		CreatedAt:      created,
		SendStatus:     types.SendStatusPending,
	})
	repo.PutProposal(&model.Proposal{
		ID:             "unset",
		AudienceTarget: types.AudienceBoardOfDirectors,
		CreatedAt:      created,
	})
	repo.PutProposal(&model.Proposal{
		ID:             "sent",
		AudienceTarget: types.AudienceBoardOfDirectors,
		CreatedAt:      created,
		SendStatus:     types.SendStatusSent,
	})

	got, err := repo.Proposal().ListPending(ctx)
	gt.NoError(t, err)
	gt.Array(t, got).Length(2)
	for _, p := range got {
		gt.Bool(t, p.ID == "sent").False()
	}
}

func TestProposalRepositoryWrites(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	seedProposal(repo, "p1", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), types.AudienceBoardOfDirectors, "")

	gt.NoError(t, repo.Proposal().SetIssueNumber(ctx, "p1", 7))
	gt.NoError(t, repo.Proposal().SetSendStatus(ctx, "p1", types.SendStatusSent))

	got, err := repo.Proposal().Get(ctx, "p1")
	gt.NoError(t, err)
	gt.Value(t, got.IssueNumber).Equal(7)
	gt.Value(t, got.SendStatus).Equal(types.SendStatusSent)

	err = repo.Proposal().SetIssueNumber(ctx, "missing", 1)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()

	err = repo.Proposal().SetSendStatus(ctx, "missing", types.SendStatusSent)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
}

func TestProposalRepositoryCopiesOnRead(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	deadline := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	repo.PutProposal(&model.Proposal{
		ID:             "p1",
		AudienceTarget: types.AudienceBoardOfDirectors,
		CreatedAt:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Deadline:       &deadline,
		ProposerNames:  []string{"alice"},
	})

	got, err := repo.Proposal().Get(ctx, "p1")
	gt.NoError(t, err)
	got.IssueNumber = 99
	*got.Deadline = got.Deadline.AddDate(1, 0, 0)
	got.ProposerNames[0] = "mallory"

	again, err := repo.Proposal().Get(ctx, "p1")
	gt.NoError(t, err)
	gt.Value(t, again.IssueNumber).Equal(0)
	gt.Value(t, *again.Deadline).Equal(deadline)
	gt.Value(t, again.ProposerNames).Equal([]string{"alice"})
}
