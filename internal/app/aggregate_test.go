package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkeye/greenroom/internal/domain"
)

func TestAggregator_Snapshot_CountsEveryRoomCreated(t *testing.T) {
	adm, registry := newTestAdmission()
	agg := NewAggregator(registry)

	adm.Join("A", "u1", "Ann")
	adm.Join("A", "u2", "Bob")
	registry.GetOrCreate("B") // created, never joined

	snap := agg.Snapshot()
	require.Len(t, snap.Rooms, 2)
	require.Equal(t, registry.Version(), snap.Version)

	// Sorted by name for stable output.
	require.Equal(t, domain.RoomName("A"), snap.Rooms[0].Name)
	require.Equal(t, domain.RoomName("B"), snap.Rooms[1].Name)
	require.Len(t, snap.Rooms[0].Members, 2)
	require.Empty(t, snap.Rooms[1].Members)
}

func TestAggregator_Snapshot_MemberViewMatchesRoster(t *testing.T) {
	adm, registry := newTestAdmission()
	agg := NewAggregator(registry)

	out := adm.Join("Lobby", "u1", "Ann")
	require.True(t, out.OK)

	snap := agg.Snapshot()
	require.Len(t, snap.Rooms, 1)
	got := snap.Rooms[0].Members[0]
	require.Equal(t, "u1", got.ID)
	require.Equal(t, "Ann", got.Name)
	require.Equal(t, domain.RoleParticipant, got.Role)
}

func TestSnapshot_Describe(t *testing.T) {
	adm, registry := newTestAdmission()
	agg := NewAggregator(registry)

	adm.Join("Lobby", "u1", "Ann")
	adm.Join("Lobby", "u2", "Bob")
	adm.Join("Lobby", "u3", "Cid")

	msg := agg.Snapshot().Describe()
	require.Contains(t, msg, "Tracking 1 room(s)")
	require.Contains(t, msg, registry.Version())
	require.Contains(t, msg, "Ann (participant)")
	require.Contains(t, msg, "Cid (observer)")
}

func TestCapacityPolicy_PickRole(t *testing.T) {
	p := CapacityPolicy{}

	require.Equal(t, domain.RoleParticipant, p.PickRole(0, 0))
	require.Equal(t, domain.RoleParticipant, p.PickRole(1, 0))
	require.Equal(t, domain.RoleObserver, p.PickRole(2, 0))
	// Observers never block an active slot.
	require.Equal(t, domain.RoleParticipant, p.PickRole(1, 8))
}
