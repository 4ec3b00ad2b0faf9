package app

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkeye/greenroom/internal/core"
	"github.com/dkeye/greenroom/internal/domain"
)

func newTestAdmission() (*Admission, *core.Registry) {
	rng := rand.New(rand.NewPCG(1, 2))
	registry := core.NewRegistry(rng)
	return NewAdmission(registry, CapacityPolicy{}, rng), registry
}

func TestAdmission_Join_RejectsEmptyFields(t *testing.T) {
	adm, registry := newTestAdmission()

	for _, tc := range []struct{ room, user string }{
		{"", "u1"},
		{"Lobby", ""},
		{"  ", "u1"},
		{"", ""},
	} {
		out := adm.Join(tc.room, tc.user, "")
		require.False(t, out.OK)
		require.Equal(t, CodeInvalidRequest, out.Code)
	}

	// Validation fails before the registry is touched.
	require.Equal(t, 0, registry.Len())
}

func TestAdmission_Join_DeterministicRoleOrder(t *testing.T) {
	adm, _ := newTestAdmission()

	wantRoles := []domain.Role{
		domain.RoleParticipant,
		domain.RoleParticipant,
		domain.RoleObserver,
		domain.RoleObserver,
	}
	for i, want := range wantRoles {
		out := adm.Join("Lobby", fmt.Sprintf("u%d", i+1), "")
		require.True(t, out.OK)
		require.Equal(t, want, out.Member.Role)
		require.Len(t, out.Roster, i+1)
	}
}

func TestAdmission_Join_LobbyScenario(t *testing.T) {
	adm, _ := newTestAdmission()

	out := adm.Join("Lobby", "u1", "Ann")
	require.True(t, out.OK)
	require.Equal(t, domain.RoleParticipant, out.Member.Role)
	require.Contains(t, out.Message, "Hello Ann! You are a participant.")
	require.Len(t, out.Roster, 1)

	out = adm.Join("Lobby", "u2", "Bob")
	require.Equal(t, domain.RoleParticipant, out.Member.Role)
	require.Len(t, out.Roster, 2)

	out = adm.Join("Lobby", "u3", "Cid")
	require.Equal(t, domain.RoleObserver, out.Member.Role)
	require.Contains(t, out.Message, "You are an observer.")
	require.Len(t, out.Roster, 3)

	out = adm.Join("Lobby", "u1", "Ann")
	require.False(t, out.OK)
	require.Equal(t, CodeDuplicateMember, out.Code)

	status := adm.Join("Lobby", "u4", "Dee")
	require.Len(t, status.Roster, 4)
}

func TestAdmission_Join_NinthObserverRejected(t *testing.T) {
	adm, registry := newTestAdmission()

	for i := 0; i < domain.MaxParticipants+domain.MaxObservers; i++ {
		out := adm.Join("Lobby", fmt.Sprintf("u%d", i), "")
		require.True(t, out.OK)
	}

	out := adm.Join("Lobby", "late", "")
	require.False(t, out.OK)
	require.Equal(t, CodeRoleFull, out.Code)

	room, ok := registry.Get("Lobby")
	require.True(t, ok)
	require.Equal(t, domain.MaxParticipants+domain.MaxObservers, room.MemberCount())
}

func TestAdmission_Join_GeneratesDisplayName(t *testing.T) {
	adm, _ := newTestAdmission()

	out := adm.Join("Lobby", "u1", "")
	require.True(t, out.OK)
	require.Len(t, out.Member.Name, domain.GeneratedNameLen)
	for _, r := range out.Member.Name {
		require.GreaterOrEqual(t, r, 'A')
		require.LessOrEqual(t, r, 'Z')
	}
}

func TestAdmission_Join_ConcurrentJoinsKeepInvariants(t *testing.T) {
	adm, registry := newTestAdmission()

	const joiners = 50
	outcomes := make([]Outcome, joiners)
	var wg sync.WaitGroup
	wg.Add(joiners)
	for i := 0; i < joiners; i++ {
		go func(i int) {
			defer wg.Done()
			outcomes[i] = adm.Join("Lobby", fmt.Sprintf("u%d", i), "")
		}(i)
	}
	wg.Wait()

	joined, rejected := 0, 0
	for _, out := range outcomes {
		if out.OK {
			joined++
		} else {
			require.Equal(t, CodeRoleFull, out.Code)
			rejected++
		}
	}
	require.Equal(t, domain.MaxParticipants+domain.MaxObservers, joined)
	require.Equal(t, joiners-joined, rejected)

	room, ok := registry.Get("Lobby")
	require.True(t, ok)
	roster := room.Snapshot()
	require.Equal(t, domain.MaxParticipants, countRole(roster, domain.RoleParticipant))
	require.Equal(t, domain.MaxObservers, countRole(roster, domain.RoleObserver))
}

func TestAdmission_Join_DifferentRoomsAreIndependent(t *testing.T) {
	adm, _ := newTestAdmission()

	for i := 0; i < 3; i++ {
		adm.Join("A", fmt.Sprintf("u%d", i), "")
	}
	out := adm.Join("B", "u0", "")
	require.True(t, out.OK)
	require.Equal(t, domain.RoleParticipant, out.Member.Role)
}

func countRole(roster []domain.Participant, role domain.Role) int {
	n := 0
	for _, m := range roster {
		if m.Role == role {
			n++
		}
	}
	return n
}
