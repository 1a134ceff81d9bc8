package main

import (
	"time"
)

type GamePhase string

const (
	PhaseLobby            GamePhase = "lobby"
	PhaseIntroduction     GamePhase = "introduction"
	PhaseExploration      GamePhase = "exploration"
	PhaseEmergencyMeeting GamePhase = "emergency_meeting"
	PhaseResolution       GamePhase = "resolution"
	PhaseGameOver         GamePhase = "game_over"
)

// phaseTransitions lists every legal move of the phase machine. GameOver is
// terminal. startGame jumps lobby -> exploration directly; the introduction
// phase is reachable through the same table for clients that narrate it.
var phaseTransitions = map[GamePhase][]GamePhase{
	PhaseLobby:            {PhaseIntroduction, PhaseExploration},
	PhaseIntroduction:     {PhaseExploration},
	PhaseExploration:      {PhaseEmergencyMeeting, PhaseResolution},
	PhaseEmergencyMeeting: {PhaseExploration, PhaseResolution},
	PhaseResolution:       {PhaseGameOver},
}

type PlayerStatus string

const (
	StatusAlive      PlayerStatus = "alive"
	StatusFled       PlayerStatus = "fled"
	StatusVotedOut   PlayerStatus = "voted_out"
	StatusSpectating PlayerStatus = "spectating"
)

type Vector2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Costume is the cosmetic identity a guest wears. Purely visual.
type Costume struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

func defaultCostume() Costume {
	return Costume{
		ID:          "default",
		Name:        "Masked Guest",
		Description: "A mysterious guest in elegant attire",
		Color:       "#8b5cf6",
	}
}

// GrantedAbility is a catalog ability held by one player, plus the runtime
// state of its cost model. The catalog entry itself is shared and never
// mutated.
type GrantedAbility struct {
	Ability       *Ability
	LastUsed      time.Time // cooldown model
	UsesRemaining int       // uses model
}

type Player struct {
	ID           string
	Username     string
	Costume      Costume
	Position     Vector2D
	CurrentRoom  string
	Status       PlayerStatus
	Role         *Role // hidden from every other player
	Abilities    []*GrantedAbility
	IsHost       bool
	LastMovement time.Time
	Fear         *FearState
}

// FearLevel is the single source of truth for the player's fear meter.
func (p *Player) FearLevel() float64 {
	if p.Fear == nil {
		return 0
	}
	return p.Fear.CurrentLevel
}

func (p *Player) grantedAbility(abilityID string) *GrantedAbility {
	for _, ga := range p.Abilities {
		if ga.Ability.ID == abilityID {
			return ga
		}
	}
	return nil
}

// GameSettings configures one session.
type GameSettings struct {
	MaxPlayers        int
	GameDuration      time.Duration
	FearDecayRate     float64
	HauntingCooldowns map[string]time.Duration // per-ability overrides
	RolesEnabled      []string
}

func defaultSettings() GameSettings {
	return GameSettings{
		MaxPlayers:        10,
		GameDuration:      10 * time.Minute,
		FearDecayRate:     2,
		HauntingCooldowns: map[string]time.Duration{},
		RolesEnabled:      allRoleIDs(),
	}
}

// roomEffects tracks timed ability mutations of a room, scoped to one
// session so teardown never leaks timers.
type roomEffects struct {
	LockedUntil time.Time
	DimUntil    time.Time
}

func (e *roomEffects) lockedAt(now time.Time) bool {
	return e != nil && now.Before(e.LockedUntil)
}

func (e *roomEffects) dimAt(now time.Time) bool {
	return e != nil && now.Before(e.DimUntil)
}

// Session is one game instance. Players keeps join order: the next host is
// always the earliest joiner still present.
type Session struct {
	ID            string
	Players       []*Player
	Phase         GamePhase
	StartTime     time.Time
	EndsAt        time.Time
	MeetingEndsAt time.Time
	Winner        string
	Settings      GameSettings
	RoomEffects   map[string]*roomEffects
}

func (s *Session) player(playerID string) *Player {
	for _, p := range s.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

func (s *Session) host() *Player {
	for _, p := range s.Players {
		if p.IsHost {
			return p
		}
	}
	return nil
}

func (s *Session) alivePlayersInRoom(roomID string) []*Player {
	var in []*Player
	for _, p := range s.Players {
		if p.Status == StatusAlive && p.CurrentRoom == roomID {
			in = append(in, p)
		}
	}
	return in
}

func (s *Session) effectsFor(roomID string) *roomEffects {
	if s.RoomEffects == nil {
		s.RoomEffects = make(map[string]*roomEffects)
	}
	eff, ok := s.RoomEffects[roomID]
	if !ok {
		eff = &roomEffects{}
		s.RoomEffects[roomID] = eff
	}
	return eff
}

func (s *Session) advancePhase(to GamePhase) error {
	for _, next := range phaseTransitions[s.Phase] {
		if next == to {
			s.Phase = to
			return nil
		}
	}
	return ErrInvalidPhase
}

func (s *Session) timeRemaining(now time.Time) int {
	if s.EndsAt.IsZero() || now.After(s.EndsAt) {
		return 0
	}
	return int(s.EndsAt.Sub(now).Seconds())
}

// Sanitized wire views. Role is only ever present in a view built for its
// owner; connection internals never leave the process.

type PlayerView struct {
	ID          string       `json:"id"`
	Username    string       `json:"username"`
	Costume     Costume      `json:"costume"`
	Position    Vector2D     `json:"position"`
	CurrentRoom string       `json:"currentRoom"`
	FearLevel   float64      `json:"fearLevel"`
	Status      PlayerStatus `json:"status"`
	IsHost      bool         `json:"isHost"`
	Role        *Role        `json:"role,omitempty"`
}

type SessionView struct {
	ID            string       `json:"id"`
	Players       []PlayerView `json:"players"`
	CurrentPhase  GamePhase    `json:"currentPhase"`
	MaxPlayers    int          `json:"maxPlayers"`
	TimeRemaining int          `json:"timeRemaining"`
	Winner        string       `json:"winner,omitempty"`
}

func (p *Player) view(includeRole bool) PlayerView {
	v := PlayerView{
		ID:          p.ID,
		Username:    p.Username,
		Costume:     p.Costume,
		Position:    p.Position,
		CurrentRoom: p.CurrentRoom,
		FearLevel:   p.FearLevel(),
		Status:      p.Status,
		IsHost:      p.IsHost,
	}
	if includeRole {
		v.Role = p.Role
	}
	return v
}

// view builds the session as seen by viewerID: everyone's public state,
// plus the viewer's own role.
func (s *Session) view(viewerID string, now time.Time) SessionView {
	players := make([]PlayerView, 0, len(s.Players))
	for _, p := range s.Players {
		players = append(players, p.view(p.ID == viewerID))
	}
	return SessionView{
		ID:            s.ID,
		Players:       players,
		CurrentPhase:  s.Phase,
		MaxPlayers:    s.Settings.MaxPlayers,
		TimeRemaining: s.timeRemaining(now),
		Winner:        s.Winner,
	}
}

// ChatMessage mirrors the client chat payload.
type ChatMessage struct {
	ID         string `json:"id"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Message    string `json:"message"`
	Timestamp  int64  `json:"timestamp"`
	Type       string `json:"type"` // public, private or system
}
