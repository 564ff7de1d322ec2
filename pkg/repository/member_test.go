package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ringi/pkg/domain/model"
	"github.com/secmon-lab/ringi/pkg/domain/types"
	"github.com/secmon-lab/ringi/pkg/repository/memory"
)

func TestMemberRepositoryGet(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	repo.PutMember(&model.Member{
		ID:                    "m1",
		DisplayName:           "Alice",
		IsBoardDirector:       true,
		NotificationChannelID: "U-alice",
		ServiceStatus:         types.ServiceStatusProduction,
	})

	got, err := repo.Member().Get(ctx, "m1")
	gt.NoError(t, err)
	gt.Value(t, got.DisplayName).Equal("Alice")
	gt.Bool(t, got.IsBoardDirector).True()

	_, err = repo.Member().Get(ctx, "missing")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
}

func TestMemberRepositoryListAudience(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	repo.PutMember(&model.Member{
		ID:                    "director",
		IsBoardDirector:       true,
		NotificationChannelID: "U-1",
		ServiceStatus:         types.ServiceStatusProduction,
	})
	repo.PutMember(&model.Member{
		ID:              "director-no-channel",
		IsBoardDirector: true,
		ServiceStatus:   types.ServiceStatusProduction,
	})
	repo.PutMember(&model.Member{
		ID:                    "director-test",
		IsBoardDirector:       true,
		NotificationChannelID: "U-2",
		ServiceStatus:         types.ServiceStatusTest,
	})
	repo.PutMember(&model.Member{
		ID:                    "general",
		IsGeneralMember:       true,
		NotificationChannelID: "U-3",
		ServiceStatus:         types.ServiceStatusProduction,
	})
	repo.PutMember(&model.Member{
		ID:                    "both-roles",
		IsBoardDirector:       true,
		IsGeneralMember:       true,
		NotificationChannelID: "U-4",
		ServiceStatus:         types.ServiceStatusProduction,
	})

	got, err := repo.Member().ListAudience(ctx, types.AudienceBoardOfDirectors)
	gt.NoError(t, err)

	ids := make(map[types.MemberID]bool)
	for _, m := range got {
		ids[m.ID] = true
	}
	// Channel presence is the caller's filter, so the channel-less
	// director is still listed. Test-status members are not.
	gt.Value(t, ids).Equal(map[types.MemberID]bool{
		"director":            true,
		"director-no-channel": true,
		"both-roles":          true,
	})

	got, err = repo.Member().ListAudience(ctx, types.AudienceGeneralMembers)
	gt.NoError(t, err)
	gt.Array(t, got).Length(2)
}
