package main

import (
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"
)

var ErrStoreClosed = errors.New("session store is closed")

const meetingDuration = 45 * time.Second

// SessionStore owns every active session in the process. One mutex covers
// all of them: each inbound message and each tick runs to completion before
// the next is handled, so handlers never observe half-applied state.
type SessionStore struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	playerIndex map[string]string // playerID -> sessionID
	gateway     EventGateway
	clock       func() time.Time
	done        chan struct{}
	closeOnce   sync.Once
	closed      bool
}

func OpenSessionStore(gw EventGateway) *SessionStore {
	return &SessionStore{
		sessions:    make(map[string]*Session),
		playerIndex: make(map[string]string),
		gateway:     gw,
		clock:       time.Now,
		done:        make(chan struct{}),
	}
}

// Close stops the ticker and drops every session. Safe to call twice.
func (st *SessionStore) Close() {
	st.closeOnce.Do(func() {
		close(st.done)
		st.mu.Lock()
		defer st.mu.Unlock()
		st.closed = true
		st.sessions = make(map[string]*Session)
		st.playerIndex = make(map[string]string)
	})
}

// runTicker drives the continuous side of the game: fear integration,
// countdowns, meeting timeouts and timed room-effect expiry.
func (st *SessionStore) runTicker(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-st.done:
			return
		case <-ticker.C:
			st.Tick(st.clock())
		}
	}
}

// Tick advances every session to now. It holds the store lock for its whole
// run, so it is atomic relative to action handlers.
func (st *SessionStore) Tick(now time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, s := range st.sessions {
		st.tickSession(s, now)
	}
}

func (st *SessionStore) tickSession(s *Session, now time.Time) {
	sweepRoomEffects(s, now)

	if s.Phase != PhaseExploration && s.Phase != PhaseEmergencyMeeting {
		return
	}

	fled := tickSessionFear(s, now)
	for _, p := range fled {
		st.gateway.Broadcast(s, Message{
			Type: "player_fled",
			Data: map[string]interface{}{"playerId": p.ID},
		})
	}

	st.gateway.Broadcast(s, Message{Type: "fear_update", Data: fearSnapshot(s)})

	if s.Phase == PhaseEmergencyMeeting && now.After(s.MeetingEndsAt) {
		if err := s.advancePhase(PhaseExploration); err == nil {
			st.broadcastPhase(s, now)
		}
	}

	if now.After(s.EndsAt) || !guestsRemain(s) {
		st.endGame(s, now)
	}
}

// fearSnapshot is the per-tick broadcast of everyone's public fear levels.
func fearSnapshot(s *Session) map[string]interface{} {
	levels := make([]map[string]interface{}, 0, len(s.Players))
	for _, p := range s.Players {
		levels = append(levels, map[string]interface{}{
			"playerId":  p.ID,
			"fearLevel": p.FearLevel(),
			"status":    p.Status,
		})
	}
	return map[string]interface{}{"players": levels}
}

// guestsRemain reports whether any alive non-ghost player is left.
func guestsRemain(s *Session) bool {
	for _, p := range s.Players {
		if p.Status != StatusAlive {
			continue
		}
		if p.Role == nil || p.Role.ID != "ghost" {
			return true
		}
	}
	return false
}

// endGame resolves the session and parks it in the terminal phase. The
// Ghost wins by emptying the mansion; the guests win by lasting the night.
func (st *SessionStore) endGame(s *Session, now time.Time) {
	winner := "town"
	if !guestsRemain(s) {
		winner = "ghost"
	}
	s.Winner = winner

	if err := s.advancePhase(PhaseResolution); err != nil {
		return
	}
	st.broadcastPhase(s, now)

	if err := s.advancePhase(PhaseGameOver); err == nil {
		log.Printf("🏁 Session %s over, winner: %s\n", s.ID, winner)
		st.gateway.Broadcast(s, Message{
			Type: "game_over",
			Data: map[string]interface{}{"winner": winner},
		})
		st.broadcastPhase(s, now)
	}
}

func (st *SessionStore) broadcastPhase(s *Session, now time.Time) {
	st.gateway.Broadcast(s, Message{
		Type: "phase_change",
		Data: map[string]interface{}{
			"phase":         s.Phase,
			"timeRemaining": s.timeRemaining(now),
		},
	})
}

// sweepRoomEffects lazily reverts expired lockdowns and lights-out. If the
// session lost its occupants before expiry the revert is a harmless no-op.
func sweepRoomEffects(s *Session, now time.Time) {
	for roomID, eff := range s.RoomEffects {
		if !eff.LockedUntil.IsZero() && now.After(eff.LockedUntil) {
			log.Printf("🔓 Lockdown on %s expired\n", roomID)
			eff.LockedUntil = time.Time{}
		}
		if !eff.DimUntil.IsZero() && now.After(eff.DimUntil) {
			log.Printf("💡 Lights back on in %s\n", roomID)
			eff.DimUntil = time.Time{}
		}
		if eff.LockedUntil.IsZero() && eff.DimUntil.IsZero() {
			delete(s.RoomEffects, roomID)
		}
	}
}

// SessionSummary is the public lobby listing entry; it never carries roles
// or any per-player internals.
type SessionSummary struct {
	ID          string    `json:"id"`
	PlayerCount int       `json:"playerCount"`
	MaxPlayers  int       `json:"maxPlayers"`
	Phase       GamePhase `json:"phase"`
}

func (st *SessionStore) ListSessions() []SessionSummary {
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]SessionSummary, 0, len(st.sessions))
	for _, s := range st.sessions {
		out = append(out, SessionSummary{
			ID:          s.ID,
			PlayerCount: len(s.Players),
			MaxPlayers:  s.Settings.MaxPlayers,
			Phase:       s.Phase,
		})
	}
	return out
}

const sessionIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func newSessionID() string {
	code := make([]byte, 6)
	for i := range code {
		code[i] = sessionIDAlphabet[rand.Intn(len(sessionIDAlphabet))]
	}
	return string(code)
}
