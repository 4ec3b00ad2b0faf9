// Package app wires the registry to the request-facing admission and
// status logic.
package app

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/dkeye/greenroom/internal/core"
	"github.com/dkeye/greenroom/internal/domain"
	"github.com/rs/zerolog/log"
)

var ErrInvalidRequest = errors.New("room code and user id must not be empty")

// Code classifies a join outcome for callers that want more than prose.
type Code string

const (
	CodeJoined          Code = "joined"
	CodeInvalidRequest  Code = "invalid_request"
	CodeDuplicateMember Code = "duplicate_member"
	CodeRoleFull        Code = "role_capacity_exceeded"
	CodeInternal        Code = "internal_error"
)

// Outcome is what a join attempt reports back. Rejections are values,
// never panics; the transport layer only ever sees a well-formed one.
type Outcome struct {
	OK      bool
	Code    Code
	Message string
	Room    domain.RoomName
	Member  domain.Participant
	Roster  []domain.Participant
}

// Admission performs joins against the registry: validate, get or
// create the room, then decide role and insert under that room's lock.
type Admission struct {
	registry *core.Registry
	policy   Policy

	// rng mints display names for joiners that did not supply one.
	// *rand.Rand is not threadsafe, hence the guard.
	mu  sync.Mutex
	rng *rand.Rand
}

func NewAdmission(registry *core.Registry, policy Policy, rng *rand.Rand) *Admission {
	return &Admission{registry: registry, policy: policy, rng: rng}
}

// Join admits userID into roomName, assigning the role the policy picks
// from the room's current per-role counts. The count and the insert run
// under one held room lock, so capacity can not be raced past.
func (a *Admission) Join(roomName, userID, displayName string) Outcome {
	roomName = strings.TrimSpace(roomName)
	userID = strings.TrimSpace(userID)
	if roomName == "" || userID == "" {
		log.Warn().Str("module", "app.admission").Str("room", roomName).Str("user", userID).Msg("invalid join request")
		return Outcome{Code: CodeInvalidRequest, Message: ErrInvalidRequest.Error()}
	}

	room := a.registry.GetOrCreate(domain.RoomName(roomName))
	if displayName == "" {
		displayName = a.randomName()
	}

	member, roster, err := room.Admit(userID, displayName, a.policy.PickRole)
	if err != nil {
		return a.reject(room.Name(), userID, err)
	}

	return Outcome{
		OK:      true,
		Code:    CodeJoined,
		Message: greeting(member, room.Name(), roster),
		Room:    room.Name(),
		Member:  member,
		Roster:  roster,
	}
}

func (a *Admission) reject(room domain.RoomName, userID string, err error) Outcome {
	out := Outcome{Room: room}
	switch {
	case errors.Is(err, domain.ErrDuplicateMember):
		out.Code = CodeDuplicateMember
		out.Message = fmt.Sprintf("Sorry %s, you are already in room %s.", userID, room)
		log.Warn().Str("module", "app.admission").Str("room", string(room)).Str("user", userID).Msg("duplicate member rejected")
	case errors.Is(err, domain.ErrRoomRoleFull):
		out.Code = CodeRoleFull
		out.Message = fmt.Sprintf("Sorry %s, room %s is full.", userID, room)
		log.Warn().Str("module", "app.admission").Str("room", string(room)).Str("user", userID).Msg("room full, join rejected")
	default:
		out.Code = CodeInternal
		out.Message = "Something went wrong, please try again."
		log.Error().Err(err).Str("module", "app.admission").Str("room", string(room)).Str("user", userID).Msg("join failed")
	}
	return out
}

func (a *Admission) randomName() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return domain.RandomName(a.rng)
}

func greeting(m domain.Participant, room domain.RoomName, roster []domain.Participant) string {
	var b strings.Builder
	if m.Role == domain.RoleObserver {
		fmt.Fprintf(&b, "Hello %s! You are an observer.", m.Name)
	} else {
		fmt.Fprintf(&b, "Hello %s! You are a participant.", m.Name)
	}
	names := make([]string, 0, len(roster))
	for _, p := range roster {
		names = append(names, p.Name)
	}
	fmt.Fprintf(&b, " Room %s now has %d member(s): %s.", room, len(roster), strings.Join(names, ", "))
	return b.String()
}
