package main

import (
	"log"
	"time"

	"github.com/google/uuid"
)

// Fear engine. Each alive player carries a continuously integrated fear
// meter driven by room ambience, occupancy and timed modifiers. Reaching
// the cap makes the player flee the mansion for good.

const (
	defaultMaxFear       = 100.0
	isolationFearRate    = 3.0 // per second, alone in a room
	groupComfortRate     = 1.0 // per second, with 3+ other guests
	groupComfortSize     = 3
	safeAmbientThreshold = 1.0 // rooms at or below this allow passive decay
)

type ModifierKind string

const (
	ModifierHaunting      ModifierKind = "haunting"
	ModifierIsolation     ModifierKind = "isolation"
	ModifierEnvironmental ModifierKind = "environmental"
	ModifierProximity     ModifierKind = "proximity"
	ModifierDarkness      ModifierKind = "darkness"
)

// FearModifier adjusts a player's fear by Value per second. Duration zero
// means permanent until explicitly removed.
type FearModifier struct {
	ID        string
	Kind      ModifierKind
	Value     float64
	Duration  time.Duration
	Source    string
	StartTime time.Time
}

func (m FearModifier) expiredAt(now time.Time) bool {
	return m.Duration > 0 && now.Sub(m.StartTime) > m.Duration
}

type FearState struct {
	CurrentLevel  float64
	MaxLevel      float64
	BaseDecayRate float64
	Modifiers     []FearModifier
	LastUpdate    time.Time
	ImmuneUntil   time.Time
}

func newFearState(maxFear, decayRate float64, now time.Time) *FearState {
	if maxFear <= 0 {
		maxFear = defaultMaxFear
	}
	return &FearState{
		MaxLevel:      maxFear,
		BaseDecayRate: decayRate,
		LastUpdate:    now,
	}
}

// addModifier installs mod, replacing any existing modifier with the same
// kind and source rather than stacking.
func (fs *FearState) addModifier(mod FearModifier) {
	kept := fs.Modifiers[:0]
	for _, m := range fs.Modifiers {
		if m.Kind == mod.Kind && m.Source == mod.Source {
			continue
		}
		kept = append(kept, m)
	}
	fs.Modifiers = append(kept, mod)
}

// removeModifier drops modifiers matching kind; an empty source matches any
// source. Removing an absent modifier is a no-op.
func (fs *FearState) removeModifier(kind ModifierKind, source string) {
	kept := fs.Modifiers[:0]
	for _, m := range fs.Modifiers {
		if m.Kind == kind && (source == "" || m.Source == source) {
			continue
		}
		kept = append(kept, m)
	}
	fs.Modifiers = kept
}

func (fs *FearState) immuneAt(now time.Time) bool {
	return now.Before(fs.ImmuneUntil)
}

func (fs *FearState) setImmunity(d time.Duration, now time.Time) {
	fs.ImmuneUntil = now.Add(d)
}

func (fs *FearState) percentage() float64 {
	if fs.MaxLevel <= 0 {
		return 0
	}
	return fs.CurrentLevel / fs.MaxLevel * 100
}

// tickSessionFear advances every alive player's fear meter to now and
// returns the players that hit the cap and fled this tick. A fault in one
// player's update never disturbs the others.
func tickSessionFear(s *Session, now time.Time) []*Player {
	var fled []*Player
	for _, p := range s.Players {
		if p.Status != StatusAlive || p.Fear == nil {
			continue
		}
		if updatePlayerFear(s, p, now) {
			fled = append(fled, p)
		}
	}
	return fled
}

func updatePlayerFear(s *Session, p *Player, now time.Time) (fled bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("💥 Fear update for %s failed: %v\n", p.ID, r)
			fled = false
		}
	}()

	fs := p.Fear
	elapsed := now.Sub(fs.LastUpdate)
	if elapsed <= 0 {
		return false
	}

	if fs.immuneAt(now) {
		// Immunity freezes the meter; advancing LastUpdate avoids a
		// catch-up spike when it lapses.
		fs.LastUpdate = now
		return false
	}

	change := fearChange(s, p, fs, elapsed, now)

	fs.CurrentLevel = clamp(fs.CurrentLevel+change, 0, fs.MaxLevel)
	fs.LastUpdate = now

	if fs.CurrentLevel >= fs.MaxLevel {
		fleePlayer(p)
		return true
	}
	return false
}

func fearChange(s *Session, p *Player, fs *FearState, elapsed time.Duration, now time.Time) float64 {
	secs := elapsed.Seconds()

	ambientRate := 1.0
	if room := getRoomData(p.CurrentRoom); room != nil {
		ambientRate = room.AmbientFearRate
	}
	change := ambientRate * secs

	others := len(s.alivePlayersInRoom(p.CurrentRoom)) - 1
	switch {
	case others <= 0:
		change += isolationFearRate * secs
	case others >= groupComfortSize:
		change -= groupComfortRate * secs
	}

	kept := fs.Modifiers[:0]
	for _, m := range fs.Modifiers {
		if m.expiredAt(now) {
			continue
		}
		change += m.Value * secs
		kept = append(kept, m)
	}
	fs.Modifiers = kept

	// Passive decay only in calm moments in safe rooms; the meter never
	// decays and accumulates in the same tick.
	if change <= 0 && ambientRate <= safeAmbientThreshold {
		change -= fs.BaseDecayRate * secs
	}

	return change
}

// fleePlayer is terminal: the guest bolts from the mansion and spectates
// for the rest of the session.
func fleePlayer(p *Player) {
	log.Printf("🏃 Player %s fled the mansion at max fear!\n", p.Username)
	p.Status = StatusFled
	p.Fear.Modifiers = nil
	p.Fear.CurrentLevel = 0
}

// applyGhostAbilityFear converts a lump fear amount into a per-second
// haunting modifier on every alive occupant of the room, spread over the
// effect's duration. Returns how many guests were affected.
func applyGhostAbilityFear(s *Session, roomID string, fearTotal float64, duration time.Duration, now time.Time) int {
	if duration <= 0 {
		duration = 10 * time.Second
	}
	perSecond := fearTotal / duration.Seconds()

	affected := s.alivePlayersInRoom(roomID)
	for _, p := range affected {
		if p.Fear == nil {
			continue
		}
		p.Fear.addModifier(FearModifier{
			ID:        "ghost_ability_" + uuid.NewString(),
			Kind:      ModifierHaunting,
			Value:     perSecond,
			Duration:  duration,
			Source:    "ghost_ability",
			StartTime: now,
		})
	}
	return len(affected)
}

// applyProximityFear scares a guest near ghost activity: full effect in the
// same room, half effect for a shorter spell one room away.
func applyProximityFear(p *Player, ghostRoomID string, fearPerSecond float64, now time.Time) {
	if p.Fear == nil {
		return
	}
	switch {
	case p.CurrentRoom == ghostRoomID:
		p.Fear.addModifier(FearModifier{
			ID:        "proximity_ghost_" + uuid.NewString(),
			Kind:      ModifierProximity,
			Value:     fearPerSecond,
			Duration:  5 * time.Second,
			Source:    "ghost_proximity",
			StartTime: now,
		})
	case roomsAdjacent(ghostRoomID, p.CurrentRoom):
		p.Fear.addModifier(FearModifier{
			ID:        "proximity_ghost_adjacent_" + uuid.NewString(),
			Kind:      ModifierProximity,
			Value:     fearPerSecond * 0.5,
			Duration:  3 * time.Second,
			Source:    "ghost_proximity_adjacent",
			StartTime: now,
		})
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
