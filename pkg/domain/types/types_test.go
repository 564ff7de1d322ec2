package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ringi/pkg/domain/types"
)

func TestAudienceTarget_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		target types.AudienceTarget
		want   bool
	}{
		{
			name:   "valid board of directors",
			target: types.AudienceBoardOfDirectors,
			want:   true,
		},
		{
			name:   "valid general members",
			target: types.AudienceGeneralMembers,
			want:   true,
		},
		{
			name:   "invalid target",
			target: types.AudienceTarget("everyone"),
			want:   false,
		},
		{
			name:   "empty target",
			target: types.AudienceTarget(""),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.want {
				gt.B(t, tt.target.IsValid()).True()
			} else {
				gt.B(t, tt.target.IsValid()).False()
			}
		})
	}
}

func TestParseAudienceTarget(t *testing.T) {
	target, err := types.ParseAudienceTarget("BOARD_OF_DIRECTORS")
	gt.NoError(t, err)
	gt.V(t, target).Equal(types.AudienceBoardOfDirectors)

	_, err = types.ParseAudienceTarget("board")
	gt.Error(t, err)
}

func TestDecision_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		decision types.Decision
		want     bool
	}{
		{
			name:     "valid approved",
			decision: types.DecisionApproved,
			want:     true,
		},
		{
			name:     "valid denied",
			decision: types.DecisionDenied,
			want:     true,
		},
		{
			name:     "invalid decision",
			decision: types.Decision("maybe"),
			want:     false,
		},
		{
			name:     "empty decision",
			decision: types.Decision(""),
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.want {
				gt.B(t, tt.decision.IsValid()).True()
			} else {
				gt.B(t, tt.decision.IsValid()).False()
			}
		})
	}
}

func TestServiceStatus_IsProduction(t *testing.T) {
	gt.B(t, types.ServiceStatusProduction.IsProduction()).True()
	gt.B(t, types.ServiceStatusTest.IsProduction()).False()
	gt.B(t, types.ServiceStatusSuspended.IsProduction()).False()
	gt.B(t, types.ServiceStatus("").IsProduction()).False()
}

func TestSendStatus_Normalize(t *testing.T) {
	gt.V(t, types.SendStatus("").Normalize()).Equal(types.SendStatusPending)
	gt.V(t, types.SendStatusSent.Normalize()).Equal(types.SendStatusSent)
}

func TestIDValidate(t *testing.T) {
	gt.NoError(t, types.ProposalID("p1").Validate())
	gt.Error(t, types.ProposalID("").Validate())
	gt.NoError(t, types.MemberID("m1").Validate())
	gt.Error(t, types.MemberID("").Validate())
	gt.NoError(t, types.TicketID("t1").Validate())
	gt.Error(t, types.TicketID("").Validate())
}
