package main

import "time"

// Ability catalog. Entries are shared, read-only process-wide state; the
// runtime side (cooldown stamps, use counts) lives on GrantedAbility.

type RangeClass string

const (
	RangeSelf        RangeClass = "self"
	RangeRoom        RangeClass = "room"
	RangeAdjacent    RangeClass = "adjacent"
	RangeGlobal      RangeClass = "global"
	RangeLineOfSight RangeClass = "line_of_sight"
)

type TargetType string

const (
	TargetSelf   TargetType = "self"
	TargetPlayer TargetType = "player"
	TargetRoom   TargetType = "room"
	TargetArea   TargetType = "area"
	TargetNone   TargetType = "none"
)

type CostModel int

const (
	CostCooldown CostModel = iota
	CostUses
)

// AbilityCost is a tagged variant: an ability is either cooldown-gated or
// carries a finite use count, never both.
type AbilityCost struct {
	Model    CostModel
	Cooldown time.Duration
	MaxUses  int
}

func cooldownCost(d time.Duration) AbilityCost {
	return AbilityCost{Model: CostCooldown, Cooldown: d}
}

func usesCost(n int) AbilityCost {
	return AbilityCost{Model: CostUses, MaxUses: n}
}

type EffectKind string

const (
	EffectFearIncrease     EffectKind = "fear_increase"
	EffectRevealIdentity   EffectKind = "reveal_identity"
	EffectLockDoors        EffectKind = "lock_doors"
	EffectReduceLighting   EffectKind = "reduce_lighting"
	EffectSendMessage      EffectKind = "send_message"
	EffectPublicAccusation EffectKind = "public_accusation"
)

// AbilityEffect describes one declared effect. Kinds the resolver does not
// recognise are logged and treated as successful no-ops so new catalog
// entries never hard-fail old servers.
type AbilityEffect struct {
	Kind               EffectKind
	Value              float64
	Duration           time.Duration
	RequiresTargetRole bool
}

type Ability struct {
	ID          string
	Name        string
	Description string
	RoleID      string
	Icon        string
	Range       RangeClass
	Target      TargetType
	Cost        AbilityCost
	Effects     []AbilityEffect
}

var abilityCatalog = map[string]*Ability{
	"detective_reveal": {
		ID:          "detective_reveal",
		Name:        "Reveal Identity",
		Description: "Uncover the true identity of another player. Can only be used 3 times per game.",
		RoleID:      "detective",
		Icon:        "🔍",
		Range:       RangeGlobal,
		Target:      TargetPlayer,
		Cost:        usesCost(3),
		Effects: []AbilityEffect{
			{Kind: EffectRevealIdentity, Value: 1, RequiresTargetRole: true},
		},
	},
	"blackmailer_message": {
		ID:          "blackmailer_message",
		Name:        "Anonymous Message",
		Description: "Send a private message to any player without revealing your identity.",
		RoleID:      "blackmailer",
		Icon:        "💌",
		Range:       RangeGlobal,
		Target:      TargetPlayer,
		Cost:        cooldownCost(60 * time.Second),
		Effects: []AbilityEffect{
			{Kind: EffectSendMessage, Value: 1},
		},
	},
	"blackmailer_eavesdrop": {
		ID:          "blackmailer_eavesdrop",
		Name:        "Eavesdrop",
		Description: "Listen in on conversations in your current room for 20 seconds.",
		RoleID:      "blackmailer",
		Icon:        "👂",
		Range:       RangeRoom,
		Target:      TargetNone,
		Cost:        cooldownCost(90 * time.Second),
		Effects: []AbilityEffect{
			{Kind: "eavesdrop", Value: 1, Duration: 20 * time.Second},
		},
	},
	"accomplice_disturbance": {
		ID:          "accomplice_disturbance",
		Name:        "Minor Disturbance",
		Description: "Create a small spooky effect that the Ghost can take credit for.",
		RoleID:      "accomplice",
		Icon:        "👻",
		Range:       RangeRoom,
		Target:      TargetNone,
		Cost:        cooldownCost(45 * time.Second),
		Effects: []AbilityEffect{
			{Kind: EffectFearIncrease, Value: 5},
		},
	},
	"exorcist_sense": {
		ID:          "exorcist_sense",
		Name:        "Sense Presence",
		Description: "Detect if the Ghost has used abilities in this room recently.",
		RoleID:      "exorcist",
		Icon:        "🔮",
		Range:       RangeAdjacent,
		Target:      TargetNone,
		Cost:        cooldownCost(30 * time.Second),
		Effects: []AbilityEffect{
			{Kind: "detect_ghost_activity", Value: 1},
		},
	},
	"heir_fear_sense": {
		ID:          "heir_fear_sense",
		Name:        "Fear Sense",
		Description: "Always know how scared every player is.",
		RoleID:      "heir",
		Icon:        "👁️",
		Range:       RangeGlobal,
		Target:      TargetNone,
		Cost:        cooldownCost(0),
		Effects: []AbilityEffect{
			{Kind: "see_all_fear", Value: 1},
		},
	},
	"medium_spiritual_awareness": {
		ID:          "medium_spiritual_awareness",
		Name:        "Spiritual Awareness",
		Description: "Get notified when the Ghost uses powerful abilities nearby.",
		RoleID:      "medium",
		Icon:        "👁️",
		Range:       RangeAdjacent,
		Target:      TargetNone,
		Cost:        cooldownCost(0),
		Effects: []AbilityEffect{
			{Kind: "detect_major_ghost_activity", Value: 1},
		},
	},
	"medium_commune": {
		ID:          "medium_commune",
		Name:        "Commune with Spirits",
		Description: "Meditate to learn about recent supernatural activity.",
		RoleID:      "medium",
		Icon:        "🕯️",
		Range:       RangeRoom,
		Target:      TargetNone,
		Cost:        cooldownCost(120 * time.Second),
		Effects: []AbilityEffect{
			{Kind: "learn_ghost_location", Value: 1, Duration: 5 * time.Second},
		},
	},
	"paranormal_sensor": {
		ID:          "paranormal_sensor",
		Name:        "Set Up Sensor",
		Description: "Place up to 3 sensors that detect Ghost activity.",
		RoleID:      "paranormal_investigator",
		Icon:        "📡",
		Range:       RangeRoom,
		Target:      TargetNone,
		Cost:        usesCost(3),
		Effects: []AbilityEffect{
			{Kind: "place_sensor", Value: 1},
		},
	},
	"paranormal_document": {
		ID:          "paranormal_document",
		Name:        "Document Event",
		Description: "Record a supernatural event you witnessed.",
		RoleID:      "paranormal_investigator",
		Icon:        "📸",
		Range:       RangeRoom,
		Target:      TargetNone,
		Cost:        cooldownCost(15 * time.Second),
		Effects: []AbilityEffect{
			{Kind: "gain_evidence_point", Value: 1},
		},
	},
	"skeptic_analyze": {
		ID:          "skeptic_analyze",
		Name:        "Rational Analysis",
		Description: "Analyze a haunting to find logical explanations.",
		RoleID:      "skeptic",
		Icon:        "🔬",
		Range:       RangeRoom,
		Target:      TargetNone,
		Cost:        cooldownCost(45 * time.Second),
		Effects: []AbilityEffect{
			{Kind: "find_explanation", Value: 1},
		},
	},
	"skeptic_expose": {
		ID:          "skeptic_expose",
		Name:        "Public Accusation",
		Description: "Accuse someone of being the Ghost (high risk, high reward).",
		RoleID:      "skeptic",
		Icon:        "📢",
		Range:       RangeGlobal,
		Target:      TargetPlayer,
		Cost:        usesCost(2),
		Effects: []AbilityEffect{
			{Kind: EffectPublicAccusation, Value: 1},
		},
	},
	"insurance_inspect": {
		ID:          "insurance_inspect",
		Name:        "Inspect Damage",
		Description: "Examine haunting aftermath to determine if it's staged.",
		RoleID:      "insurance_investigator",
		Icon:        "📋",
		Range:       RangeRoom,
		Target:      TargetNone,
		Cost:        cooldownCost(30 * time.Second),
		Effects: []AbilityEffect{
			{Kind: "assess_damage", Value: 1},
		},
	},
	"insurance_interview": {
		ID:          "insurance_interview",
		Name:        "Interview Witness",
		Description: "Ask another player a yes/no question about the events.",
		RoleID:      "insurance_investigator",
		Icon:        "🗣️",
		Range:       RangeRoom,
		Target:      TargetPlayer,
		Cost:        cooldownCost(60 * time.Second),
		Effects: []AbilityEffect{
			{Kind: "ask_question", Value: 1},
		},
	},
	"ghost_haunt": {
		ID:          "ghost_haunt",
		Name:        "Haunt Room",
		Description: "Create eerie atmosphere that increases fear in the room.",
		RoleID:      "ghost",
		Icon:        "👻",
		Range:       RangeRoom,
		Target:      TargetNone,
		Cost:        cooldownCost(30 * time.Second),
		Effects: []AbilityEffect{
			{Kind: EffectFearIncrease, Value: 15, Duration: 10 * time.Second},
		},
	},
	"ghost_major_scare": {
		ID:          "ghost_major_scare",
		Name:        "Major Scare",
		Description: "Create a dramatic haunting event with high fear impact.",
		RoleID:      "ghost",
		Icon:        "😱",
		Range:       RangeRoom,
		Target:      TargetNone,
		Cost:        cooldownCost(90 * time.Second),
		Effects: []AbilityEffect{
			{Kind: EffectFearIncrease, Value: 30, Duration: 15 * time.Second},
		},
	},
	"ghost_lockdown": {
		ID:          "ghost_lockdown",
		Name:        "Lockdown",
		Description: "Lock all doors to/from this room for 20 seconds.",
		RoleID:      "ghost",
		Icon:        "🔒",
		Range:       RangeRoom,
		Target:      TargetNone,
		Cost:        cooldownCost(120 * time.Second),
		Effects: []AbilityEffect{
			{Kind: EffectLockDoors, Value: 1, Duration: 20 * time.Second},
		},
	},
	"ghost_lights_out": {
		ID:          "ghost_lights_out",
		Name:        "Lights Out",
		Description: "Turn off lights in this room and adjacent rooms.",
		RoleID:      "ghost",
		Icon:        "💡",
		Range:       RangeAdjacent,
		Target:      TargetNone,
		Cost:        cooldownCost(60 * time.Second),
		Effects: []AbilityEffect{
			{Kind: EffectReduceLighting, Value: 1, Duration: 30 * time.Second},
		},
	},
}

func getAbility(abilityID string) *Ability {
	return abilityCatalog[abilityID]
}
