package app

import "github.com/dkeye/greenroom/internal/domain"

// Policy decides which role the next joiner of a room receives.
type Policy interface {
	PickRole(participants, observers int) domain.Role
}

// CapacityPolicy hands out active slots while any are free and overflow
// slots after that. The decision keys on the participant count alone,
// so observers already in the room never block an active slot.
type CapacityPolicy struct{}

func (CapacityPolicy) PickRole(participants, observers int) domain.Role {
	if participants < domain.MaxParticipants {
		return domain.RoleParticipant
	}
	return domain.RoleObserver
}
