package room

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"secret-hitler/internal/config"
	"secret-hitler/internal/game"
)

// Manager owns the room registry and runs every operation against it. All
// mutations for one room serialize on that room's lock; events collected
// during a mutation are published only after the lock is released.
type Manager struct {
	store Store
	cfg   config.Config
	bus   Broadcaster
	log   *logrus.Logger

	// SeedFn provides the rng seed for a starting game. Tests override it
	// to make role assignment and deck order deterministic.
	SeedFn func() int64
}

func NewManager(s Store, cfg config.Config, bus Broadcaster, log *logrus.Logger) *Manager {
	if log == nil {
		log = logrus.New()
	}
	return &Manager{
		store:  s,
		cfg:    cfg,
		bus:    bus,
		log:    log,
		SeedFn: func() int64 { return time.Now().UnixNano() },
	}
}

// Alphabet without easily-confused characters (0/O, 1/I).
const codeLetters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randCode(n int) string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, n)
	for i := range b {
		b[i] = codeLetters[r.Intn(len(codeLetters))]
	}
	return string(b)
}

// CreateRoom opens a new lobby with the creator seated first.
func (m *Manager) CreateRoom(creatorName string) (*Room, *Player, error) {
	if creatorName == "" {
		return nil, nil, game.Validationf("player name required")
	}

	codeLen := m.cfg.RoomCodeLength
	if codeLen <= 0 {
		codeLen = 6
	}
	code := randCode(codeLen)
	for _, taken := m.store.GetRoom(code); taken; _, taken = m.store.GetRoom(code) {
		code = randCode(codeLen)
	}

	creator := &Player{
		ID:      uuid.New(),
		Name:    creatorName,
		IsAlive: true,
	}
	r := &Room{
		Code:      code,
		CreatorID: creator.ID,
		Players:   []*Player{creator},
		Status:    StatusLobby,
		CreatedAt: time.Now(),
	}
	m.store.SaveRoom(r)

	m.log.WithFields(logrus.Fields{"room": code, "creator": creator.ID}).Info("room created")
	return r, creator, nil
}

// JoinRoom seats a new player at the end of the turn order. Lobby only.
func (m *Manager) JoinRoom(code, playerName string) (*Player, error) {
	if playerName == "" {
		return nil, game.Validationf("player name required")
	}
	r, ok := m.store.GetRoom(code)
	if !ok {
		return nil, &game.NotFoundError{What: "room"}
	}

	r.mu.Lock()
	if r.Status != StatusLobby {
		r.mu.Unlock()
		return nil, game.Validationf("game already started")
	}
	if len(r.Players) >= game.MaxPlayers {
		r.mu.Unlock()
		return nil, game.Validationf("room is full")
	}
	p := &Player{
		ID:        uuid.New(),
		Name:      playerName,
		SeatIndex: len(r.Players),
		IsAlive:   true,
	}
	r.Players = append(r.Players, p)
	m.store.SaveRoom(r)
	r.mu.Unlock()

	m.publish(code, []event{broadcast(EventStateUpdated, nil)})
	return p, nil
}

// LeaveRoom removes a player from a lobby. If the creator leaves, the next
// seat inherits the room; an emptied room is deleted from the registry.
func (m *Manager) LeaveRoom(code string, playerID uuid.UUID) error {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return &game.NotFoundError{What: "room"}
	}

	r.mu.Lock()
	if r.Status != StatusLobby {
		r.mu.Unlock()
		return game.Validationf("cannot leave a game in progress")
	}
	idx := -1
	for i, p := range r.Players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return &game.NotFoundError{What: "player"}
	}
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)
	for i, p := range r.Players {
		p.SeatIndex = i
	}
	if len(r.Players) == 0 {
		m.store.DeleteRoom(code)
		r.mu.Unlock()
		m.log.WithField("room", code).Info("room emptied and deleted")
		return nil
	}
	if r.CreatorID == playerID {
		r.CreatorID = r.Players[0].ID
	}
	m.store.SaveRoom(r)
	r.mu.Unlock()

	m.publish(code, []event{broadcast(EventStateUpdated, nil)})
	return nil
}

// ReorderPlayers lets the creator rearrange seat order before the game
// starts. orderedIDs must be a permutation of the current roster.
func (m *Manager) ReorderPlayers(code string, requesterID uuid.UUID, orderedIDs []uuid.UUID) error {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return &game.NotFoundError{What: "room"}
	}

	r.mu.Lock()
	err := func() error {
		if r.Status != StatusLobby {
			return game.Validationf("cannot reorder players after the game has started")
		}
		if r.CreatorID != requesterID {
			return game.Validationf("only the room creator can reorder players")
		}
		if len(orderedIDs) != len(r.Players) {
			return game.Validationf("player order must include every player exactly once")
		}
		byID := make(map[uuid.UUID]*Player, len(r.Players))
		for _, p := range r.Players {
			byID[p.ID] = p
		}
		reordered := make([]*Player, 0, len(orderedIDs))
		for _, id := range orderedIDs {
			p, ok := byID[id]
			if !ok {
				return game.Validationf("player order must include every player exactly once")
			}
			delete(byID, id)
			reordered = append(reordered, p)
		}
		for i, p := range reordered {
			p.SeatIndex = i
		}
		r.Players = reordered
		m.store.SaveRoom(r)
		return nil
	}()
	r.mu.Unlock()

	if err != nil {
		return err
	}
	m.publish(code, []event{broadcast(EventStateUpdated, nil)})
	return nil
}

// StartGame deals roles and the policy deck and opens the first nomination.
// Creator only; needs at least five seated players.
func (m *Manager) StartGame(code string, requesterID uuid.UUID) error {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return &game.NotFoundError{What: "room"}
	}

	r.mu.Lock()
	if r.Status != StatusLobby {
		r.mu.Unlock()
		return game.Validationf("game already started")
	}
	if r.CreatorID != requesterID {
		r.mu.Unlock()
		return game.Validationf("only the room creator can start the game")
	}
	if len(r.Players) < game.MinPlayers {
		r.mu.Unlock()
		return game.Validationf("need at least %d players to start", game.MinPlayers)
	}

	rng := rand.New(rand.NewSource(m.SeedFn()))

	ids := make([]uuid.UUID, len(r.Players))
	for i, p := range r.Players {
		ids[i] = p.ID
	}
	roles, err := game.AssignRoles(rng, ids)
	if err != nil {
		r.mu.Unlock()
		return err
	}

	r.Game = &game.State{
		RoundNumber:  1,
		PresidentID:  ids[rng.Intn(len(ids))],
		Deck:         game.NewPolicyDeck(rng),
		Roles:        roles,
		Investigated: make(map[uuid.UUID]bool),
		Phase:        game.PhaseNomination,
	}
	r.Status = StatusInProgress
	m.store.SaveRoom(r)
	r.mu.Unlock()

	m.log.WithFields(logrus.Fields{"room": code, "players": len(ids)}).Info("game started")
	m.publish(code, []event{broadcast(EventStateUpdated, nil)})
	return nil
}
