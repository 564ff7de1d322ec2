package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ringi/pkg/domain/types"
	"github.com/secmon-lab/ringi/pkg/repository/memory"
	"github.com/secmon-lab/ringi/pkg/usecase"
)

func issueOneTicket(t *testing.T, ctx context.Context, repo *memory.Memory, uc *usecase.UseCases) types.TicketID {
	t.Helper()
	created := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)
	repo.PutProposal(newProposal("p1", created, types.AudienceBoardOfDirectors, "finance"))
	repo.PutMember(newDirector("m1", "U-1"))

	result, err := uc.IssueTickets(ctx, "p1")
	gt.NoError(t, err)
	gt.Array(t, result.Created).Length(1)
	return result.Created[0]
}

func TestRecordDecision(t *testing.T) {
	ctx := context.Background()

	t.Run("records approval with comment", func(t *testing.T) {
		repo := seedRepo(nil, nil)
		uc := usecase.New(repo, usecase.WithNotifier(&recordNotifier{}))
		ticketID := issueOneTicket(t, ctx, repo, uc)

		result, err := uc.RecordDecision(ctx, ticketID, types.DecisionApproved, "looks fine")
		gt.NoError(t, err)
		gt.Bool(t, result.AlreadyDecided).False()
		gt.Value(t, result.Decision).Equal(types.DecisionApproved)
		gt.Value(t, result.Comment).Equal("looks fine")
		gt.Bool(t, result.DecidedAt.IsZero()).False()

		stored, err := repo.Ticket().Get(ctx, ticketID)
		gt.NoError(t, err)
		gt.Bool(t, stored.IsDecided()).True()
	})

	t.Run("second decision returns the original untouched", func(t *testing.T) {
		repo := seedRepo(nil, nil)
		uc := usecase.New(repo, usecase.WithNotifier(&recordNotifier{}))
		ticketID := issueOneTicket(t, ctx, repo, uc)

		first, err := uc.RecordDecision(ctx, ticketID, types.DecisionDenied, "too costly")
		gt.NoError(t, err)

		second, err := uc.RecordDecision(ctx, ticketID, types.DecisionApproved, "changed my mind")
		gt.NoError(t, err)
		gt.Bool(t, second.AlreadyDecided).True()
		gt.Value(t, second.Decision).Equal(types.DecisionDenied)
		gt.Value(t, second.Comment).Equal("too costly")
		gt.Value(t, second.DecidedAt).Equal(first.DecidedAt)

		stored, err := repo.Ticket().Get(ctx, ticketID)
		gt.NoError(t, err)
		gt.Value(t, stored.Decision).Equal(types.DecisionDenied)
	})

	t.Run("missing ticket", func(t *testing.T) {
		uc := usecase.New(seedRepo(nil, nil))

		_, err := uc.RecordDecision(ctx, "nope", types.DecisionApproved, "")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrNotFound)).True()
	})

	t.Run("empty ticket ID", func(t *testing.T) {
		uc := usecase.New(seedRepo(nil, nil))

		_, err := uc.RecordDecision(ctx, "", types.DecisionApproved, "")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrMissingRequiredField)).True()
	})

	t.Run("invalid decision value", func(t *testing.T) {
		repo := seedRepo(nil, nil)
		uc := usecase.New(repo, usecase.WithNotifier(&recordNotifier{}))
		ticketID := issueOneTicket(t, ctx, repo, uc)

		_, err := uc.RecordDecision(ctx, ticketID, "MAYBE", "")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrMissingRequiredField)).True()
	})
}
