package core

import (
	"hash/fnv"
	"math/rand/v2"
	"sync"

	"github.com/dkeye/greenroom/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	shardCount = 32
	versionLen = 8
)

const versionAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

type shard struct {
	mu    sync.RWMutex
	rooms map[domain.RoomName]*Room
}

// Registry maps room names to shared lockable rooms. Names are spread
// over fixed shards so admissions to distinct rooms do not contend on a
// single registry lock. Rooms are never evicted; they live until the
// registry is dropped.
type Registry struct {
	shards [shardCount]shard
	ver    string
}

// NewRegistry builds an empty registry. The version stamp is minted
// once here from rng and stays fixed for the registry's lifetime.
func NewRegistry(rng *rand.Rand) *Registry {
	r := &Registry{ver: randomVersion(rng)}
	for i := range r.shards {
		r.shards[i].rooms = make(map[domain.RoomName]*Room)
	}
	return r
}

func randomVersion(rng *rand.Rand) string {
	b := make([]byte, versionLen)
	for i := range b {
		b[i] = versionAlphabet[rng.IntN(len(versionAlphabet))]
	}
	return string(b)
}

func (r *Registry) shardFor(name domain.RoomName) *shard {
	h := fnv.New32a()
	h.Write([]byte(name))
	return &r.shards[h.Sum32()%shardCount]
}

// GetOrCreate returns the room for name, inserting a fresh empty one if
// absent. The lookup is retried under the shard write lock, so
// concurrent first joins to the same name all land on one instance.
func (r *Registry) GetOrCreate(name domain.RoomName) *Room {
	s := r.shardFor(name)

	s.mu.RLock()
	room, ok := s.rooms[name]
	s.mu.RUnlock()
	if ok {
		return room
	}

	s.mu.Lock()
	if room, ok = s.rooms[name]; ok {
		s.mu.Unlock()
		return room
	}
	room = newRoom(name)
	s.rooms[name] = room
	s.mu.Unlock()

	log.Info().Str("module", "core.registry").Str("room", string(name)).Msg("room created")
	return room
}

// Get is the non-creating lookup used by read-only callers.
func (r *Registry) Get(name domain.RoomName) (*Room, bool) {
	s := r.shardFor(name)
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[name]
	return room, ok
}

// All enumerates every room, locking one shard at a time. The result is
// a point-in-time listing, not an atomic snapshot of the whole
// registry; rooms inserted mid-enumeration may or may not appear.
func (r *Registry) All() []*Room {
	out := make([]*Room, 0)
	for i := range r.shards {
		s := &r.shards[i]
		s.mu.RLock()
		for _, room := range s.rooms {
			out = append(out, room)
		}
		s.mu.RUnlock()
	}
	return out
}

// Len counts rooms ever created, member or not.
func (r *Registry) Len() int {
	n := 0
	for i := range r.shards {
		s := &r.shards[i]
		s.mu.RLock()
		n += len(s.rooms)
		s.mu.RUnlock()
	}
	return n
}

// Version returns the stamp minted at construction, unchanged for the
// process's life.
func (r *Registry) Version() string { return r.ver }
