package main

import (
	"testing"
	"time"
)

// startedSession wires a two-player session with hand-picked roles so the
// ability under test is deterministic.
func startedSession(t *testing.T, st *SessionStore, actorRole, targetRole string) (*Session, *Player, *Player) {
	t.Helper()

	s, actor, err := st.CreateOrJoinSession("", "actor", false)
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	_, target, err := st.CreateOrJoinSession(s.ID, "target", false)
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}

	now := st.clock()
	s.Phase = PhaseExploration
	s.EndsAt = now.Add(10 * time.Minute)
	for _, p := range s.Players {
		p.Fear = newFearState(defaultMaxFear, s.Settings.FearDecayRate, now)
	}

	actor.Role = getRole(actorRole)
	actor.Abilities = grantAbilities(actor.Role)
	target.Role = getRole(targetRole)
	target.Abilities = grantAbilities(target.Role)

	return s, actor, target
}

func TestAbilityCooldownEnforced(t *testing.T) {
	st, _, clock := newTestStore(t)
	_, ghost, _ := startedSession(t, st, "ghost", "detective")

	if _, err := st.UseAbility(ghost.ID, "ghost_haunt", ""); err != nil {
		t.Fatalf("first use failed: %v", err)
	}
	if _, err := st.UseAbility(ghost.ID, "ghost_haunt", ""); err != ErrOnCooldown {
		t.Fatalf("expected ErrOnCooldown, got %v", err)
	}

	clock.Advance(30 * time.Second)
	if _, err := st.UseAbility(ghost.ID, "ghost_haunt", ""); err != nil {
		t.Fatalf("use after cooldown failed: %v", err)
	}
}

func TestAbilityCooldownOverride(t *testing.T) {
	st, _, clock := newTestStore(t)
	s, ghost, _ := startedSession(t, st, "ghost", "detective")
	s.Settings.HauntingCooldowns["ghost_haunt"] = 5 * time.Second

	st.UseAbility(ghost.ID, "ghost_haunt", "")
	clock.Advance(6 * time.Second)
	if _, err := st.UseAbility(ghost.ID, "ghost_haunt", ""); err != nil {
		t.Fatalf("settings override should shorten the cooldown: %v", err)
	}
}

func TestAbilityUsesModel(t *testing.T) {
	st, _, _ := newTestStore(t)
	_, detective, target := startedSession(t, st, "detective", "ghost")

	ga := detective.grantedAbility("detective_reveal")
	if ga.UsesRemaining != 3 {
		t.Fatalf("expected 3 uses granted, got %d", ga.UsesRemaining)
	}

	for i := 0; i < 3; i++ {
		if _, err := st.UseAbility(detective.ID, "detective_reveal", target.ID); err != nil {
			t.Fatalf("use %d failed: %v", i+1, err)
		}
	}
	if ga.UsesRemaining != 0 {
		t.Fatalf("expected 0 uses left, got %d", ga.UsesRemaining)
	}
	if _, err := st.UseAbility(detective.ID, "detective_reveal", target.ID); err != ErrNoUsesRemaining {
		t.Fatalf("expected ErrNoUsesRemaining, got %v", err)
	}
}

func TestRevealIdentityIsPrivate(t *testing.T) {
	st, gw, _ := newTestStore(t)
	_, detective, target := startedSession(t, st, "detective", "ghost")
	gw.reset()

	result, err := st.UseAbility(detective.ID, "detective_reveal", target.ID)
	if err != nil {
		t.Fatalf("reveal failed: %v", err)
	}
	if result.Data["revealedRole"] != "ghost" || result.Data["targetName"] != "target" {
		t.Fatalf("unexpected result payload: %+v", result.Data)
	}

	if len(gw.sentTo(detective.ID, "ability_result")) != 1 {
		t.Fatalf("actor should get a private ability_result")
	}
	if len(gw.sentTo(target.ID, "ability_result")) != 0 {
		t.Fatalf("the target must never learn about the reveal")
	}
	if len(gw.byType("ghost_ability_used")) != 0 {
		t.Fatalf("a reveal is not room-visible")
	}
}

func TestRevealRequiresAssignedRole(t *testing.T) {
	st, _, _ := newTestStore(t)
	_, detective, target := startedSession(t, st, "detective", "ghost")
	target.Role = nil

	ga := detective.grantedAbility("detective_reveal")
	if _, err := st.UseAbility(detective.ID, "detective_reveal", target.ID); err != ErrTargetHasNoRole {
		t.Fatalf("expected ErrTargetHasNoRole, got %v", err)
	}
	if ga.UsesRemaining != 3 {
		t.Fatalf("failed validation must not consume a use, got %d", ga.UsesRemaining)
	}
}

func TestPlayerTargetValidation(t *testing.T) {
	st, _, _ := newTestStore(t)
	_, detective, target := startedSession(t, st, "detective", "ghost")

	if _, err := st.UseAbility(detective.ID, "detective_reveal", ""); err != ErrInvalidTarget {
		t.Fatalf("missing target: expected ErrInvalidTarget, got %v", err)
	}
	if _, err := st.UseAbility(detective.ID, "detective_reveal", "nobody"); err != ErrInvalidTarget {
		t.Fatalf("unknown target: expected ErrInvalidTarget, got %v", err)
	}

	target.Status = StatusFled
	if _, err := st.UseAbility(detective.ID, "detective_reveal", target.ID); err != ErrInvalidTarget {
		t.Fatalf("fled target: expected ErrInvalidTarget, got %v", err)
	}
}

func TestRoomRangeRequiresSameRoom(t *testing.T) {
	st, _, _ := newTestStore(t)
	_, investigator, target := startedSession(t, st, "insurance_investigator", "ghost")

	target.CurrentRoom = "attic"
	if _, err := st.UseAbility(investigator.ID, "insurance_interview", target.ID); err != ErrTargetOutOfRange {
		t.Fatalf("expected ErrTargetOutOfRange, got %v", err)
	}

	target.CurrentRoom = investigator.CurrentRoom
	if _, err := st.UseAbility(investigator.ID, "insurance_interview", target.ID); err != nil {
		t.Fatalf("same-room interview failed: %v", err)
	}
}

func TestActorMustBeAliveAndOwnAbility(t *testing.T) {
	st, _, _ := newTestStore(t)
	_, ghost, detective := startedSession(t, st, "ghost", "detective")

	if _, err := st.UseAbility(detective.ID, "ghost_haunt", ""); err != ErrAbilityUnknown {
		t.Fatalf("expected ErrAbilityUnknown for someone else's ability, got %v", err)
	}

	ghost.Status = StatusFled
	if _, err := st.UseAbility(ghost.ID, "ghost_haunt", ""); err != ErrPlayerNotAlive {
		t.Fatalf("expected ErrPlayerNotAlive, got %v", err)
	}
}

func TestGhostHauntAppliesFearModifiers(t *testing.T) {
	st, gw, clock := newTestStore(t)
	s, ghost, victim := startedSession(t, st, "ghost", "detective")
	bystander := testPlayer("bystander", "library", clock.Now())
	s.Players = append(s.Players, bystander)
	st.playerIndex[bystander.ID] = s.ID
	gw.reset()

	result, err := st.UseAbility(ghost.ID, "ghost_haunt", "")
	if err != nil {
		t.Fatalf("haunt failed: %v", err)
	}
	if result.Data["affectedPlayers"] != 2 {
		t.Fatalf("expected 2 affected occupants, got %v", result.Data["affectedPlayers"])
	}

	// 15 fear over 10s = 1.5/s haunting on everyone in the ballroom.
	mod := victim.Fear.Modifiers[0]
	if mod.Kind != ModifierHaunting || !almostEqual(mod.Value, 1.5) {
		t.Fatalf("unexpected modifier: %+v", mod)
	}

	// Library is adjacent: the bystander gets half the rate for a shorter spell.
	bmod := bystander.Fear.Modifiers[0]
	if bmod.Kind != ModifierProximity || !almostEqual(bmod.Value, 0.75) {
		t.Fatalf("unexpected proximity modifier: %+v", bmod)
	}

	if len(gw.byType("ghost_ability_used")) != 1 {
		t.Fatalf("haunt should broadcast to the room")
	}
}

func TestLightsOutDimsAdjacentRooms(t *testing.T) {
	st, _, clock := newTestStore(t)
	s, ghost, _ := startedSession(t, st, "ghost", "detective")

	if _, err := st.UseAbility(ghost.ID, "ghost_lights_out", ""); err != nil {
		t.Fatalf("lights out failed: %v", err)
	}

	now := clock.Now()
	if !s.RoomEffects["grand_ballroom"].dimAt(now) {
		t.Fatalf("the haunted room should be dark")
	}
	for _, adjacent := range connectedRooms("grand_ballroom") {
		if !s.RoomEffects[adjacent].dimAt(now) {
			t.Fatalf("adjacent room %s should be dark", adjacent)
		}
	}

	clock.Advance(31 * time.Second)
	st.Tick(clock.Now())
	if s.RoomEffects["grand_ballroom"].dimAt(clock.Now()) {
		t.Fatalf("lights should be back on after 30s")
	}
}

func TestLockdownEffect(t *testing.T) {
	st, _, clock := newTestStore(t)
	_, ghost, victim := startedSession(t, st, "ghost", "detective")

	if _, err := st.UseAbility(ghost.ID, "ghost_lockdown", ""); err != nil {
		t.Fatalf("lockdown failed: %v", err)
	}

	if err := st.ChangeRoom(victim.ID, "library"); err != ErrRoomLocked {
		t.Fatalf("lockdown should trap the victim, got %v", err)
	}

	clock.Advance(21 * time.Second)
	st.Tick(clock.Now())

	if err := st.ChangeRoom(victim.ID, "library"); err != nil {
		t.Fatalf("door should open after lockdown expires: %v", err)
	}
}

func TestAnonymousMessageEffect(t *testing.T) {
	st, gw, _ := newTestStore(t)
	_, blackmailer, mark := startedSession(t, st, "blackmailer", "heir")
	gw.reset()

	if _, err := st.UseAbility(blackmailer.ID, "blackmailer_message", mark.ID); err != nil {
		t.Fatalf("anonymous message failed: %v", err)
	}

	delivered := gw.sentTo(mark.ID, "private_message")
	if len(delivered) != 1 {
		t.Fatalf("target should receive the anonymous note")
	}
	note := delivered[0].Msg.Data.(ChatMessage)
	if note.PlayerID == blackmailer.ID || note.PlayerName == blackmailer.Username {
		t.Fatalf("the note must not identify the sender: %+v", note)
	}
}

func TestPublicAccusationCallsMeeting(t *testing.T) {
	st, gw, _ := newTestStore(t)
	s, skeptic, accused := startedSession(t, st, "skeptic", "ghost")
	gw.reset()

	if _, err := st.UseAbility(skeptic.ID, "skeptic_expose", accused.ID); err != nil {
		t.Fatalf("accusation failed: %v", err)
	}

	if s.Phase != PhaseEmergencyMeeting {
		t.Fatalf("accusation should call an emergency meeting, got %s", s.Phase)
	}
	if len(gw.byType("phase_change")) == 0 {
		t.Fatalf("phase change should be broadcast")
	}
}

func TestMeetingTimesOutBackToExploration(t *testing.T) {
	st, _, clock := newTestStore(t)
	s, skeptic, accused := startedSession(t, st, "skeptic", "ghost")

	st.UseAbility(skeptic.ID, "skeptic_expose", accused.ID)
	if s.Phase != PhaseEmergencyMeeting {
		t.Fatalf("expected emergency meeting")
	}

	clock.Advance(meetingDuration + time.Second)
	st.Tick(clock.Now())

	if s.Phase != PhaseExploration {
		t.Fatalf("meeting should time out back to exploration, got %s", s.Phase)
	}
}

func TestUnrecognizedEffectIsSuccessfulNoop(t *testing.T) {
	st, gw, _ := newTestStore(t)
	_, exorcist, _ := startedSession(t, st, "exorcist", "ghost")
	gw.reset()

	result, err := st.UseAbility(exorcist.ID, "exorcist_sense", "")
	if err != nil {
		t.Fatalf("unhandled effect kinds must not fail: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success")
	}
	if len(gw.sentTo(exorcist.ID, "ability_result")) != 1 {
		t.Fatalf("actor still gets an ability_result")
	}
}

func TestZeroCooldownAbilityAlwaysUsable(t *testing.T) {
	st, _, _ := newTestStore(t)
	_, heir, _ := startedSession(t, st, "heir", "ghost")

	for i := 0; i < 3; i++ {
		if _, err := st.UseAbility(heir.ID, "heir_fear_sense", ""); err != nil {
			t.Fatalf("use %d failed: %v", i+1, err)
		}
	}
}
