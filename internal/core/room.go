package core

import (
	"sync"

	"github.com/dkeye/greenroom/internal/domain"
	"github.com/rs/zerolog/log"
)

// RolePicker decides the role for the next joiner from the per-role
// member counts of the target room.
type RolePicker func(participants, observers int) domain.Role

// Room is a threadsafe handle around a domain.Room. The registry and
// any in-flight admission share the same handle; the mutex is the unit
// of mutual exclusion for that room and nothing else.
type Room struct {
	mu    sync.Mutex
	state *domain.Room
}

func newRoom(name domain.RoomName) *Room {
	return &Room{state: domain.NewRoom(name)}
}

// Name never changes after construction, so reading it needs no lock.
func (r *Room) Name() domain.RoomName { return r.state.Name }

// Admit decides the joiner's role and inserts the member as one
// critical section. Counting slots and applying the insert under the
// same held lock is what keeps the capacity invariants raceproof; the
// returned roster is read before the lock is released.
func (r *Room) Admit(userID, displayName string, pick RolePicker) (domain.Participant, []domain.Participant, error) {
	r.mu.Lock()
	role := pick(
		r.state.CountByRole(domain.RoleParticipant),
		r.state.CountByRole(domain.RoleObserver),
	)
	p := domain.NewParticipant(userID, displayName, role)
	err := r.state.Admit(p)
	var roster []domain.Participant
	if err == nil {
		roster = r.state.Members()
	}
	r.mu.Unlock()

	if err != nil {
		return domain.Participant{}, nil, err
	}
	log.Info().Str("module", "core.room").Str("room", string(r.state.Name)).Str("user", userID).Str("role", string(role)).Msg("member admitted")
	return p, roster, nil
}

func (r *Room) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Len()
}

// Snapshot returns one internally consistent copy of the member list.
func (r *Room) Snapshot() []domain.Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Members()
}
