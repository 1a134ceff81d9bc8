package main

import "math/rand"

// Role is an immutable catalog entry. Players hold a pointer to the shared
// entry; it is never mutated after init.
type Role struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Objective   string   `json:"objective"`
	Abilities   []string `json:"abilities"`
	Color       string   `json:"color"`
}

var roleCatalog = map[string]*Role{
	"detective": {
		ID:          "detective",
		Name:        "Detective",
		Description: "A sharp investigator who can reveal the true identities of other guests.",
		Objective:   "Unmask the Ghost and expose their identity to everyone.",
		Abilities:   []string{"detective_reveal"},
		Color:       "#3b82f6",
	},
	"blackmailer": {
		ID:          "blackmailer",
		Name:        "Blackmailer",
		Description: "A cunning manipulator who discovers secrets and uses them for personal gain.",
		Objective:   "Discover the Ghost's identity and extort them for personal benefit.",
		Abilities:   []string{"blackmailer_message", "blackmailer_eavesdrop"},
		Color:       "#8b5cf6",
	},
	"accomplice": {
		ID:          "accomplice",
		Name:        "Accomplice",
		Description: "A mysterious ally who subtly assists the Ghost while maintaining their cover.",
		Objective:   "Help the Ghost succeed while maintaining your innocent facade.",
		Abilities:   []string{"accomplice_disturbance"},
		Color:       "#6b7280",
	},
	"exorcist": {
		ID:          "exorcist",
		Name:        "Exorcist",
		Description: "A spiritual expert who can perform rituals to banish supernatural entities.",
		Objective:   "Perform a ritual to banish the Ghost from the mortal realm.",
		Abilities:   []string{"exorcist_sense"},
		Color:       "#10b981",
	},
	"heir": {
		ID:          "heir",
		Name:        "Heir",
		Description: "The mansion's rightful owner who benefits from the estate's misfortunes.",
		Objective:   "Ensure the Ghost scares everyone away so you can inherit the empty mansion.",
		Abilities:   []string{"heir_fear_sense"},
		Color:       "#f59e0b",
	},
	"medium": {
		ID:          "medium",
		Name:        "Medium",
		Description: "A psychic sensitive who can commune with spirits and detect paranormal activity.",
		Objective:   "Use your psychic abilities to identify and communicate with the Ghost.",
		Abilities:   []string{"medium_spiritual_awareness", "medium_commune"},
		Color:       "#ec4899",
	},
	"paranormal_investigator": {
		ID:          "paranormal_investigator",
		Name:        "Paranormal Investigator",
		Description: "A scientific researcher who documents supernatural phenomena.",
		Objective:   "Document sufficient supernatural phenomena for scientific study.",
		Abilities:   []string{"paranormal_sensor", "paranormal_document"},
		Color:       "#06b6d4",
	},
	"skeptic": {
		ID:          "skeptic",
		Name:        "Skeptic",
		Description: "A rational debunker who exposes fraudulent hauntings and false identities.",
		Objective:   "Prove the haunting is fake and publicly humiliate the fraud.",
		Abilities:   []string{"skeptic_analyze", "skeptic_expose"},
		Color:       "#ef4444",
	},
	"insurance_investigator": {
		ID:          "insurance_investigator",
		Name:        "Insurance Investigator",
		Description: "A professional assessor who determines if hauntings are genuine.",
		Objective:   "Determine if the haunting is real or staged for insurance purposes.",
		Abilities:   []string{"insurance_inspect", "insurance_interview"},
		Color:       "#84cc16",
	},
	"ghost": {
		ID:          "ghost",
		Name:        "Ghost",
		Description: "A supernatural entity intent on scaring away all the mansion's guests.",
		Objective:   "Scare away all guests before your identity is revealed.",
		Abilities:   []string{"ghost_haunt", "ghost_major_scare", "ghost_lockdown", "ghost_lights_out"},
		Color:       "#7c2d12",
	},
}

func getRole(roleID string) *Role {
	return roleCatalog[roleID]
}

func allRoleIDs() []string {
	return []string{
		"detective", "blackmailer", "accomplice", "exorcist",
		"heir", "medium", "paranormal_investigator", "skeptic",
		"insurance_investigator", "ghost",
	}
}

// assignRoles deals a shuffled copy of the enabled catalog round-robin over
// the players in join order. With up to a full catalog of players every
// assigned role is distinct; past that, roles repeat.
func assignRoles(s *Session) {
	enabled := make([]string, 0, len(s.Settings.RolesEnabled))
	for _, id := range s.Settings.RolesEnabled {
		if getRole(id) != nil {
			enabled = append(enabled, id)
		}
	}
	if len(enabled) == 0 {
		enabled = allRoleIDs()
	}

	shuffled := make([]string, len(enabled))
	copy(shuffled, enabled)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	for i, p := range s.Players {
		role := getRole(shuffled[i%len(shuffled)])
		p.Role = role
		p.Abilities = grantAbilities(role)
	}
}

// grantAbilities builds the per-player runtime state for a role's abilities.
func grantAbilities(role *Role) []*GrantedAbility {
	granted := make([]*GrantedAbility, 0, len(role.Abilities))
	for _, abilityID := range role.Abilities {
		ability := getAbility(abilityID)
		if ability == nil {
			continue
		}
		ga := &GrantedAbility{Ability: ability}
		if ability.Cost.Model == CostUses {
			ga.UsesRemaining = ability.Cost.MaxUses
		}
		granted = append(granted, ga)
	}
	return granted
}
