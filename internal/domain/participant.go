// Package domain contains entities and their invariants, no transport
// or lifecycle logic.
package domain

import "math/rand/v2"

// Role tags a member as holding an active slot or an overflow slot.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleObserver    Role = "observer"
)

// GeneratedNameLen is the length of display names minted for joiners
// that did not supply one.
const GeneratedNameLen = 4

type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

func NewParticipant(id, name string, role Role) Participant {
	return Participant{ID: id, Name: name, Role: role}
}

// Same reports identity equality. Two participants are the same member
// iff their IDs match; name and role carry no identity.
func (p Participant) Same(other Participant) bool {
	return p.ID == other.ID
}

// RandomName mints an uppercase code like "QXZR" from the given source.
// The source is passed in so callers can seed it deterministically.
func RandomName(rng *rand.Rand) string {
	b := make([]byte, GeneratedNameLen)
	for i := range b {
		b[i] = byte('A' + rng.IntN(26))
	}
	return string(b)
}
