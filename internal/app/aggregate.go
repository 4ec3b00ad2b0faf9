package app

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dkeye/greenroom/internal/core"
	"github.com/dkeye/greenroom/internal/domain"
)

// RoomStatus is the read-only view of one room.
type RoomStatus struct {
	Name    domain.RoomName      `json:"name"`
	Members []domain.Participant `json:"members"`
}

// Snapshot is a point-in-time view of every room, tagged with the
// registry's process-lifetime version stamp. It is not atomic across
// rooms; each room's member list reflects one actual state of that
// room.
type Snapshot struct {
	Version string       `json:"version"`
	Rooms   []RoomStatus `json:"rooms"`
}

// Aggregator assembles status snapshots from the registry.
type Aggregator struct {
	registry *core.Registry
}

func NewAggregator(registry *core.Registry) *Aggregator {
	return &Aggregator{registry: registry}
}

// Snapshot enumerates the registry first and only then reads the rooms,
// taking one room lock at a time. No room lock is ever held while the
// registry's shards are being walked, and no two room locks are held
// together, so writers are never stalled behind a long read.
func (g *Aggregator) Snapshot() Snapshot {
	rooms := g.registry.All()
	out := Snapshot{
		Version: g.registry.Version(),
		Rooms:   make([]RoomStatus, 0, len(rooms)),
	}
	for _, room := range rooms {
		out.Rooms = append(out.Rooms, RoomStatus{
			Name:    room.Name(),
			Members: room.Snapshot(),
		})
	}
	slices.SortFunc(out.Rooms, func(a, b RoomStatus) int {
		return strings.Compare(string(a.Name), string(b.Name))
	})
	return out
}

// Describe renders the snapshot as the prose the status endpoint
// serves alongside the structured data.
func (s Snapshot) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tracking %d room(s), version %s.", len(s.Rooms), s.Version)
	for _, room := range s.Rooms {
		names := make([]string, 0, len(room.Members))
		for _, m := range room.Members {
			names = append(names, fmt.Sprintf("%s (%s)", m.Name, m.Role))
		}
		fmt.Fprintf(&b, " %s: [%s]", room.Name, strings.Join(names, ", "))
	}
	return b.String()
}
