package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ringi/pkg/domain/model"
	"github.com/secmon-lab/ringi/pkg/domain/types"
)

type memberRepository struct {
	mu      sync.RWMutex
	members map[types.MemberID]*model.Member
}

func newMemberRepository() *memberRepository {
	return &memberRepository{
		members: make(map[types.MemberID]*model.Member),
	}
}

func copyMember(m *model.Member) *model.Member {
	copied := *m
	return &copied
}

// Put stores a member as-is. Members are managed externally in
// production; this is the seam for tests and development seeding.
func (r *memberRepository) Put(m *model.Member) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[m.ID] = copyMember(m)
}

func (r *memberRepository) Get(ctx context.Context, id types.MemberID) (*model.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, exists := r.members[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "member not found", goerr.V("id", id))
	}
	return copyMember(m), nil
}

func (r *memberRepository) ListAudience(ctx context.Context, target types.AudienceTarget) ([]*model.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Member, 0)
	for _, m := range r.members {
		if !m.HasRole(target) || !m.ServiceStatus.IsProduction() {
			continue
		}
		result = append(result, copyMember(m))
	}
	return result, nil
}
