package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ringi/pkg/domain/model"
	"github.com/secmon-lab/ringi/pkg/domain/types"
	"github.com/secmon-lab/ringi/pkg/usecase"
)

func TestEnsureIssueNumber(t *testing.T) {
	ctx := context.Background()
	march := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)

	t.Run("first proposal in a bucket gets 1", func(t *testing.T) {
		repo := seedRepo([]*model.Proposal{
			newProposal("p1", march, types.AudienceBoardOfDirectors, "finance"),
		}, nil)
		uc := usecase.New(repo)

		n, err := uc.EnsureIssueNumber(ctx, "p1")
		gt.NoError(t, err)
		gt.Value(t, n).Equal(1)

		stored, err := repo.Proposal().Get(ctx, "p1")
		gt.NoError(t, err)
		gt.Value(t, stored.IssueNumber).Equal(1)
	})

	t.Run("numbers are contiguous within a bucket", func(t *testing.T) {
		repo := seedRepo([]*model.Proposal{
			newProposal("p1", march, types.AudienceBoardOfDirectors, "finance"),
			newProposal("p2", march.Add(time.Hour), types.AudienceBoardOfDirectors, "finance"),
			newProposal("p3", march.Add(2*time.Hour), types.AudienceBoardOfDirectors, "finance"),
		}, nil)
		uc := usecase.New(repo)

		for i, id := range []types.ProposalID{"p1", "p2", "p3"} {
			n, err := uc.EnsureIssueNumber(ctx, id)
			gt.NoError(t, err)
			gt.Value(t, n).Equal(i + 1)
		}
	})

	t.Run("re-running keeps the assigned number", func(t *testing.T) {
		repo := seedRepo([]*model.Proposal{
			newProposal("p1", march, types.AudienceBoardOfDirectors, "finance"),
			newProposal("p2", march.Add(time.Hour), types.AudienceBoardOfDirectors, "finance"),
		}, nil)
		uc := usecase.New(repo)

		first, err := uc.EnsureIssueNumber(ctx, "p1")
		gt.NoError(t, err)
		_, err = uc.EnsureIssueNumber(ctx, "p2")
		gt.NoError(t, err)

		again, err := uc.EnsureIssueNumber(ctx, "p1")
		gt.NoError(t, err)
		gt.Value(t, again).Equal(first)
	})

	t.Run("buckets are independent", func(t *testing.T) {
		april := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
		repo := seedRepo([]*model.Proposal{
			newProposal("board-mar", march, types.AudienceBoardOfDirectors, "finance"),
			newProposal("general-mar", march, types.AudienceGeneralMembers, "finance"),
			newProposal("board-apr", april, types.AudienceBoardOfDirectors, "finance"),
			newProposal("board-ops", march, types.AudienceBoardOfDirectors, "ops"),
		}, nil)
		uc := usecase.New(repo)

		for _, id := range []types.ProposalID{"board-mar", "general-mar", "board-apr", "board-ops"} {
			n, err := uc.EnsureIssueNumber(ctx, id)
			gt.NoError(t, err)
			gt.Value(t, n).Equal(1)
		}
	})

	t.Run("uncategorized proposals share one sequence", func(t *testing.T) {
		repo := seedRepo([]*model.Proposal{
			newProposal("p1", march, types.AudienceBoardOfDirectors, ""),
			newProposal("p2", march.Add(time.Hour), types.AudienceBoardOfDirectors, ""),
		}, nil)
		uc := usecase.New(repo)

		n1, err := uc.EnsureIssueNumber(ctx, "p1")
		gt.NoError(t, err)
		n2, err := uc.EnsureIssueNumber(ctx, "p2")
		gt.NoError(t, err)
		gt.Value(t, n1).Equal(1)
		gt.Value(t, n2).Equal(2)
	})

	// Allocation is read-then-write without a compare-and-swap in the
	// store, so contiguity is guaranteed only under serial allocation.
	// Two concurrent allocations in the same bucket can both read the
	// same max and assign a duplicate number. This is a documented
	// non-atomic invariant, accepted because proposals are processed one
	// at a time at human pace.
	t.Run("contiguity holds under serial allocation only", func(t *testing.T) {
		repo := seedRepo([]*model.Proposal{
			newProposal("p1", march, types.AudienceBoardOfDirectors, "finance"),
			newProposal("p2", march.Add(time.Hour), types.AudienceBoardOfDirectors, "finance"),
		}, nil)
		uc := usecase.New(repo)

		n1, err := uc.EnsureIssueNumber(ctx, "p1")
		gt.NoError(t, err)
		n2, err := uc.EnsureIssueNumber(ctx, "p2")
		gt.NoError(t, err)
		gt.Value(t, n1).Equal(1)
		gt.Value(t, n2).Equal(2)
	})

	t.Run("missing proposal", func(t *testing.T) {
		repo := seedRepo(nil, nil)
		uc := usecase.New(repo)

		_, err := uc.EnsureIssueNumber(ctx, "nope")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrNotFound)).True()
	})

	t.Run("empty proposal ID", func(t *testing.T) {
		uc := usecase.New(seedRepo(nil, nil))

		_, err := uc.EnsureIssueNumber(ctx, "")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrMissingRequiredField)).True()
	})

	t.Run("proposal without audience target", func(t *testing.T) {
		p := newProposal("p1", march, "", "finance")
		uc := usecase.New(seedRepo([]*model.Proposal{p}, nil))

		_, err := uc.EnsureIssueNumber(ctx, "p1")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrMissingRequiredField)).True()
	})

	t.Run("proposal without creation time", func(t *testing.T) {
		p := newProposal("p1", time.Time{}, types.AudienceBoardOfDirectors, "finance")
		uc := usecase.New(seedRepo([]*model.Proposal{p}, nil))

		_, err := uc.EnsureIssueNumber(ctx, "p1")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrMissingRequiredField)).True()
	})
}
