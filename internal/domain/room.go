package domain

import "errors"

type RoomName string

const (
	// MaxParticipants caps the active slots per room.
	MaxParticipants = 2
	// MaxObservers caps the overflow slots per room.
	MaxObservers = 8
)

var (
	ErrDuplicateMember = errors.New("user is already a member of this room")
	ErrRoomRoleFull    = errors.New("no free slot for this role")
)

// Room is a named member list with per-role capacity invariants.
// It is not safe for concurrent use on its own; core wraps it in a
// lockable handle.
type Room struct {
	Name    RoomName
	members []Participant
}

func NewRoom(name RoomName) *Room {
	return &Room{Name: name}
}

func (r *Room) Len() int { return len(r.members) }

func (r *Room) CountByRole(role Role) int {
	n := 0
	for _, m := range r.members {
		if m.Role == role {
			n++
		}
	}
	return n
}

func (r *Room) Has(id string) bool {
	for _, m := range r.members {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Members returns a copy of the member list in join order.
func (r *Room) Members() []Participant {
	out := make([]Participant, len(r.members))
	copy(out, r.members)
	return out
}

// Admit appends p to the member list, preserving join order.
// It leaves the room untouched when the user is already a member or the
// target role has no free slot.
func (r *Room) Admit(p Participant) error {
	if r.Has(p.ID) {
		return ErrDuplicateMember
	}
	if r.CountByRole(p.Role) >= roleCap(p.Role) {
		return ErrRoomRoleFull
	}
	r.members = append(r.members, p)
	return nil
}

func roleCap(role Role) int {
	if role == RoleParticipant {
		return MaxParticipants
	}
	return MaxObservers
}
