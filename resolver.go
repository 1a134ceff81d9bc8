package main

import (
	"log"
	"time"

	"github.com/google/uuid"
)

// AbilityResult is the private outcome delivered to the acting player.
type AbilityResult struct {
	AbilityID string                 `json:"abilityId"`
	Success   bool                   `json:"success"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// resolveAbility runs the full validation chain and, on success, pays the
// ability's cost and applies its effects. Validation failures leave every
// piece of session state untouched. Caller holds the store lock.
func (st *SessionStore) resolveAbility(s *Session, actor *Player, abilityID, targetID string, now time.Time) (AbilityResult, error) {
	fail := AbilityResult{AbilityID: abilityID}

	if actor.Status != StatusAlive {
		return fail, ErrPlayerNotAlive
	}

	granted := actor.grantedAbility(abilityID)
	if granted == nil {
		return fail, ErrAbilityUnknown
	}
	ability := granted.Ability

	switch ability.Cost.Model {
	case CostCooldown:
		cd := effectiveCooldown(s.Settings, ability)
		if cd > 0 && now.Sub(granted.LastUsed) < cd {
			return fail, ErrOnCooldown
		}
	case CostUses:
		if granted.UsesRemaining <= 0 {
			return fail, ErrNoUsesRemaining
		}
	}

	var target *Player
	if ability.Target == TargetPlayer {
		if targetID == "" {
			return fail, ErrInvalidTarget
		}
		target = s.player(targetID)
		if target == nil || target.Status != StatusAlive {
			return fail, ErrInvalidTarget
		}
		if !targetInRange(ability.Range, actor, target) {
			return fail, ErrTargetOutOfRange
		}
	}

	for _, eff := range ability.Effects {
		if eff.RequiresTargetRole && (target == nil || target.Role == nil) {
			return fail, ErrTargetHasNoRole
		}
	}

	// Validation passed; pay the cost and commit.
	switch ability.Cost.Model {
	case CostCooldown:
		granted.LastUsed = now
	case CostUses:
		granted.UsesRemaining--
	}

	result := AbilityResult{
		AbilityID: abilityID,
		Success:   true,
		Data:      map[string]interface{}{},
	}

	roomVisible := false
	for _, eff := range ability.Effects {
		if st.applyEffect(s, actor, target, ability, eff, &result, now) {
			roomVisible = true
		}
	}

	if roomVisible {
		st.gateway.Broadcast(s, Message{
			Type: "ghost_ability_used",
			Data: map[string]interface{}{
				"abilityId": ability.ID,
				"playerId":  actor.ID,
				"roomId":    actor.CurrentRoom,
			},
		})
	}

	log.Printf("✨ Player %s used %s\n", actor.Username, ability.ID)
	st.gateway.Send(actor.ID, Message{Type: "ability_result", Data: result})
	return result, nil
}

// applyEffect executes one declared effect and reports whether it is
// visible to the room's occupants. Unrecognised kinds are logged and count
// as successful no-ops so newer catalogs stay compatible.
func (st *SessionStore) applyEffect(s *Session, actor, target *Player, ability *Ability, eff AbilityEffect, result *AbilityResult, now time.Time) bool {
	switch eff.Kind {
	case EffectFearIncrease:
		duration := eff.Duration
		if duration <= 0 {
			duration = 10 * time.Second
		}
		affected := applyGhostAbilityFear(s, actor.CurrentRoom, eff.Value, duration, now)
		result.Data["affectedPlayers"] = affected

		// Falloff: guests one room over catch a muted echo of the scare.
		perSecond := eff.Value / duration.Seconds()
		for _, adjacentID := range connectedRooms(actor.CurrentRoom) {
			for _, p := range s.alivePlayersInRoom(adjacentID) {
				applyProximityFear(p, actor.CurrentRoom, perSecond, now)
			}
		}
		return true

	case EffectRevealIdentity:
		result.Data["revealedRole"] = target.Role.ID
		result.Data["targetName"] = target.Username
		return false

	case EffectLockDoors:
		s.effectsFor(actor.CurrentRoom).LockedUntil = now.Add(eff.Duration)
		log.Printf("🔒 Room %s locked down for %s\n", actor.CurrentRoom, eff.Duration)
		return true

	case EffectReduceLighting:
		s.effectsFor(actor.CurrentRoom).DimUntil = now.Add(eff.Duration)
		for _, adjacentID := range connectedRooms(actor.CurrentRoom) {
			s.effectsFor(adjacentID).DimUntil = now.Add(eff.Duration)
		}
		log.Printf("💡 Lights out around %s for %s\n", actor.CurrentRoom, eff.Duration)
		return true

	case EffectSendMessage:
		msg := ChatMessage{
			ID:         "msg_" + uuid.NewString(),
			PlayerID:   "anonymous",
			PlayerName: "A Masked Stranger",
			Message:    "You are being watched.",
			Timestamp:  now.UnixMilli(),
			Type:       "private",
		}
		st.gateway.Send(target.ID, Message{Type: "private_message", Data: msg})
		result.Data["delivered"] = true
		return false

	case EffectPublicAccusation:
		if s.Phase == PhaseExploration {
			if err := s.advancePhase(PhaseEmergencyMeeting); err == nil {
				s.MeetingEndsAt = now.Add(meetingDuration)
				st.broadcastPhase(s, now)
			}
		}
		st.gateway.Broadcast(s, Message{
			Type: "chat_message",
			Data: ChatMessage{
				ID:         "msg_" + uuid.NewString(),
				PlayerID:   actor.ID,
				PlayerName: "System",
				Message:    actor.Username + " publicly accuses " + target.Username + " of being the Ghost!",
				Timestamp:  now.UnixMilli(),
				Type:       "system",
			},
		})
		result.Data["accused"] = target.ID
		return false

	default:
		log.Printf("🤷 Unhandled effect kind %q from %s, treating as no-op\n", eff.Kind, ability.ID)
		return false
	}
}

func targetInRange(r RangeClass, actor, target *Player) bool {
	switch r {
	case RangeGlobal:
		return true
	case RangeAdjacent:
		return actor.CurrentRoom == target.CurrentRoom ||
			roomsAdjacent(actor.CurrentRoom, target.CurrentRoom)
	case RangeSelf:
		return actor.ID == target.ID
	default:
		// room and line_of_sight both require sharing the room
		return actor.CurrentRoom == target.CurrentRoom
	}
}

func effectiveCooldown(settings GameSettings, ability *Ability) time.Duration {
	if override, ok := settings.HauntingCooldowns[ability.ID]; ok {
		return override
	}
	return ability.Cost.Cooldown
}
