package store

import (
	"errors"
	"sync"
	"time"

	"github.com/aaronzipp/undercover/internal/game"
	"github.com/aaronzipp/undercover/internal/models"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// maxCodeAttempts bounds the retries when generated codes keep colliding
const maxCodeAttempts = 100

// ErrCodeSpaceExhausted is returned when no free room code could be found
var ErrCodeSpaceExhausted = errors.New("could not allocate a free room code")

// RoomStore is the registry of live rooms, keyed by room code.
// Its lock covers only the map; room state is guarded by each room.
// Lock order is always store then room.
type RoomStore struct {
	rooms map[string]*game.Room
	mu    sync.RWMutex

	words   game.WordSource
	rng     game.Random
	clock   clockwork.Clock
	grace   time.Duration
	newCode func() string
}

// Option configures a RoomStore
type Option func(*RoomStore)

// WithClock sets the clock used for cleanup timers
func WithClock(clock clockwork.Clock) Option {
	return func(s *RoomStore) { s.clock = clock }
}

// WithGracePeriod sets how long an emptied room waits before deletion
func WithGracePeriod(d time.Duration) Option {
	return func(s *RoomStore) { s.grace = d }
}

// WithRandom sets the source handed to new rooms. All rooms share it, so it
// must be safe for concurrent use when rooms run in parallel.
func WithRandom(rng game.Random) Option {
	return func(s *RoomStore) { s.rng = rng }
}

// WithCodeGenerator replaces the room code generator
func WithCodeGenerator(gen func() string) Option {
	return func(s *RoomStore) { s.newCode = gen }
}

// NewRoomStore creates an empty registry whose rooms draw words from words
func NewRoomStore(words game.WordSource, opts ...Option) *RoomStore {
	s := &RoomStore{
		rooms:   make(map[string]*game.Room),
		words:   words,
		rng:     game.DefaultRandom(),
		clock:   clockwork.NewRealClock(),
		grace:   game.DefaultGracePeriod,
		newCode: game.GenerateRoomCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create allocates a fresh code and opens a room hosted by hostID. The code
// check and insert happen under one write lock.
func (s *RoomStore) Create(hostID, hostName string) (*game.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seatedLocked(hostID) != nil {
		return nil, game.ErrAlreadyInRoom
	}

	for range maxCodeAttempts {
		code := s.newCode()
		if _, taken := s.rooms[code]; taken {
			continue
		}
		room, err := game.NewRoom(code, hostID, hostName, s.rng, s.words)
		if err != nil {
			return nil, err
		}
		s.rooms[code] = room
		log.Info().Str("room", code).Str("player", hostID).Msg("created room")
		return room, nil
	}
	return nil, ErrCodeSpaceExhausted
}

// Join seats playerID in the room with the given code
func (s *RoomStore) Join(code, playerID, name string) (*game.Room, models.PublicState, error) {
	code = game.NormalizeRoomCode(code)
	if !game.ValidRoomCode(code) {
		return nil, models.PublicState{}, game.ErrInvalidRoomCode
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.seatedLocked(playerID) != nil {
		return nil, models.PublicState{}, game.ErrAlreadyInRoom
	}
	room, ok := s.rooms[code]
	if !ok {
		return nil, models.PublicState{}, game.ErrRoomNotFound
	}
	state, err := room.AddPlayer(playerID, name)
	if err != nil {
		return nil, models.PublicState{}, err
	}
	log.Info().Str("room", code).Str("player", playerID).Msg("player joined")
	return room, state, nil
}

// Get retrieves a room by code
func (s *RoomStore) Get(code string) (*game.Room, error) {
	code = game.NormalizeRoomCode(code)
	if !game.ValidRoomCode(code) {
		return nil, game.ErrInvalidRoomCode
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[code]
	if !ok {
		return nil, game.ErrRoomNotFound
	}
	return room, nil
}

// GetByParticipant finds the room playerID is seated in.
// This is a linear scan; a reverse index would go here if rooms grow large.
func (s *RoomStore) GetByParticipant(playerID string) (*game.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room := s.seatedLocked(playerID)
	return room, room != nil
}

// Delete removes a room and closes it for late joiners
func (s *RoomStore) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if room, ok := s.rooms[code]; ok {
		room.Close()
		delete(s.rooms, code)
		log.Info().Str("room", code).Dur("age", time.Since(room.CreatedAt())).Msg("deleted room")
	}
}

// DeleteAll removes every room and returns how many there were
func (s *RoomStore) DeleteAll() int {
	s.mu.RLock()
	codes := make([]string, 0, len(s.rooms))
	for code := range s.rooms {
		codes = append(codes, code)
	}
	s.mu.RUnlock()

	for _, code := range codes {
		s.Delete(code)
	}
	return len(codes)
}

// DeleteIfEmpty removes the room only if nobody is seated, re-checked under
// both locks. Returns true if the room was removed.
func (s *RoomStore) DeleteIfEmpty(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[code]
	if !ok || !room.CloseIfEmpty() {
		return false
	}
	delete(s.rooms, code)
	log.Info().Str("room", code).Dur("age", time.Since(room.CreatedAt())).Msg("deleted empty room")
	return true
}

// ScheduleCleanup deletes the room after the grace period unless someone
// has joined by then
func (s *RoomStore) ScheduleCleanup(code string) {
	log.Debug().Str("room", code).Dur("grace", s.grace).Msg("scheduled cleanup")
	s.clock.AfterFunc(s.grace, func() {
		if !s.DeleteIfEmpty(code) {
			log.Debug().Str("room", code).Msg("cleanup skipped, room in use")
		}
	})
}

// Len returns the number of live rooms
func (s *RoomStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// seatedLocked returns the room playerID sits in (must be called with lock held)
func (s *RoomStore) seatedLocked(playerID string) *game.Room {
	for _, room := range s.rooms {
		if room.HasPlayer(playerID) {
			return room
		}
	}
	return nil
}
