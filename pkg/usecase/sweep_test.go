package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ringi/pkg/domain/model"
	"github.com/secmon-lab/ringi/pkg/domain/types"
	"github.com/secmon-lab/ringi/pkg/usecase"
)

func TestSweepPending(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)

	t.Run("processes all pending proposals", func(t *testing.T) {
		repo := seedRepo([]*model.Proposal{
			newProposal("p1", created, types.AudienceBoardOfDirectors, "finance"),
			newProposal("p2", created.Add(time.Hour), types.AudienceBoardOfDirectors, "finance"),
		}, []*model.Member{
			newDirector("m1", "U-1"),
		})
		notifier := &recordNotifier{}
		uc := usecase.New(repo, usecase.WithNotifier(notifier))

		result, err := uc.SweepPending(ctx)
		gt.NoError(t, err)
		gt.Array(t, result.Processed).Length(2)
		gt.Array(t, result.Failed).Length(0)
		gt.Array(t, notifier.sent()).Length(2)

		for _, id := range []types.ProposalID{"p1", "p2"} {
			p, err := repo.Proposal().Get(ctx, id)
			gt.NoError(t, err)
			gt.Value(t, p.SendStatus).Equal(types.SendStatusSent)
		}
	})

	t.Run("a broken proposal stays pending, others proceed", func(t *testing.T) {
		broken := newProposal("broken", created, "", "finance")
		repo := seedRepo([]*model.Proposal{
			newProposal("ok", created, types.AudienceBoardOfDirectors, "finance"),
			broken,
		}, []*model.Member{
			newDirector("m1", "U-1"),
		})
		uc := usecase.New(repo, usecase.WithNotifier(&recordNotifier{}))

		result, err := uc.SweepPending(ctx)
		gt.NoError(t, err)
		gt.Array(t, result.Processed).Length(1)
		gt.Array(t, result.Failed).Length(1)
		gt.Value(t, result.Failed[0].ProposalID).Equal(types.ProposalID("broken"))

		stored, err := repo.Proposal().Get(ctx, "broken")
		gt.NoError(t, err)
		gt.Value(t, stored.SendStatus).Equal(types.SendStatusPending)
	})

	t.Run("sent proposals are not reprocessed", func(t *testing.T) {
		repo := seedRepo([]*model.Proposal{
			newProposal("p1", created, types.AudienceBoardOfDirectors, "finance"),
		}, []*model.Member{
			newDirector("m1", "U-1"),
		})
		notifier := &recordNotifier{}
		uc := usecase.New(repo, usecase.WithNotifier(notifier))

		_, err := uc.SweepPending(ctx)
		gt.NoError(t, err)

		again, err := uc.SweepPending(ctx)
		gt.NoError(t, err)
		gt.Array(t, again.Processed).Length(0)
		gt.Array(t, notifier.sent()).Length(1)
	})
}
