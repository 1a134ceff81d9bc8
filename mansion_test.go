package main

import "testing"

func TestMansionGraphIsSymmetric(t *testing.T) {
	for id, room := range mansionLayout {
		for _, conn := range room.Connections {
			back := findConnection(conn.ToRoom, id)
			if back == nil {
				t.Errorf("connection %s -> %s has no return door", id, conn.ToRoom)
				continue
			}
			if back.Locked != conn.Locked {
				t.Errorf("door %s <-> %s disagrees on locked", id, conn.ToRoom)
			}
			if back.Secret != conn.Secret {
				t.Errorf("door %s <-> %s disagrees on secret", id, conn.ToRoom)
			}
		}
	}
}

func TestMansionRoomsWellFormed(t *testing.T) {
	if len(mansionLayout) != 12 {
		t.Fatalf("expected 12 rooms, got %d", len(mansionLayout))
	}
	for id, room := range mansionLayout {
		if room.ID != id {
			t.Errorf("room %s has mismatched id %s", id, room.ID)
		}
		if room.AmbientFearRate <= 0 {
			t.Errorf("room %s has no ambient fear rate", id)
		}
		if len(room.SpawnPoints) == 0 {
			t.Errorf("room %s has no spawn points", id)
		}
		if len(room.Connections) == 0 {
			t.Errorf("room %s is unreachable", id)
		}
	}
	if getRoomData(spawnRoomID) == nil {
		t.Fatalf("spawn room missing from layout")
	}
}

func TestRoomAdjacency(t *testing.T) {
	if !roomsAdjacent("grand_ballroom", "library") {
		t.Errorf("ballroom and library should be adjacent")
	}
	if roomsAdjacent("grand_ballroom", "attic") {
		t.Errorf("ballroom and attic should not be adjacent")
	}
	if roomsAdjacent("grand_ballroom", "no_such_room") {
		t.Errorf("unknown rooms are never adjacent")
	}
}

func TestRoleCatalogComplete(t *testing.T) {
	ids := allRoleIDs()
	if len(ids) != 10 {
		t.Fatalf("expected the fixed 10-role catalog, got %d", len(ids))
	}
	for _, id := range ids {
		role := getRole(id)
		if role == nil {
			t.Fatalf("role %s missing from catalog", id)
		}
		if role.Description == "" || role.Objective == "" || role.Color == "" {
			t.Errorf("role %s is missing display metadata", id)
		}
		if len(role.Abilities) == 0 {
			t.Errorf("role %s grants no abilities", id)
		}
		for _, abilityID := range role.Abilities {
			if getAbility(abilityID) == nil {
				t.Errorf("role %s references unknown ability %s", id, abilityID)
			}
		}
	}
}

func TestAbilityCatalogRolesExist(t *testing.T) {
	for id, ability := range abilityCatalog {
		if ability.ID != id {
			t.Errorf("ability %s has mismatched id %s", id, ability.ID)
		}
		if getRole(ability.RoleID) == nil {
			t.Errorf("ability %s belongs to unknown role %s", id, ability.RoleID)
		}
	}
}

func TestAbilityCostModels(t *testing.T) {
	reveal := getAbility("detective_reveal")
	if reveal.Cost.Model != CostUses || reveal.Cost.MaxUses != 3 {
		t.Fatalf("detective_reveal should be 3 uses, got %+v", reveal.Cost)
	}

	haunt := getAbility("ghost_haunt")
	if haunt.Cost.Model != CostCooldown || haunt.Cost.Cooldown.Seconds() != 30 {
		t.Fatalf("ghost_haunt should be a 30s cooldown, got %+v", haunt.Cost)
	}
}

func TestGrantAbilitiesInitializesUses(t *testing.T) {
	granted := grantAbilities(getRole("detective"))
	if len(granted) != 1 {
		t.Fatalf("expected 1 granted ability, got %d", len(granted))
	}
	if granted[0].UsesRemaining != 3 {
		t.Fatalf("uses not initialized: %d", granted[0].UsesRemaining)
	}

	ghost := grantAbilities(getRole("ghost"))
	if len(ghost) != 4 {
		t.Fatalf("the ghost should hold 4 abilities, got %d", len(ghost))
	}
}
