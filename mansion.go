package main

// Static mansion layout. Immutable for the process lifetime; sessions layer
// timed overrides (lockdowns, lights-out) on top of it without touching
// these entries.

type RoomConnection struct {
	ToRoom string `json:"toRoom"`
	Locked bool   `json:"locked,omitempty"`
	Secret bool   `json:"secret,omitempty"`
}

type Interactable struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Clues       []string `json:"clues,omitempty"`
}

type RoomData struct {
	ID              string           `json:"id"`
	DisplayName     string           `json:"displayName"`
	Description     string           `json:"description"`
	Lighting        string           `json:"lighting"` // bright, normal, dim, dark
	AmbientFearRate float64          `json:"ambientFearRate"`
	SpawnPoints     []Vector2D       `json:"spawnPoints"`
	Connections     []RoomConnection `json:"connections"`
	Interactables   []Interactable   `json:"interactables,omitempty"`
}

const spawnRoomID = "grand_ballroom"

var mansionLayout = map[string]*RoomData{
	"grand_ballroom": {
		ID:              "grand_ballroom",
		DisplayName:     "Grand Ballroom",
		Description:     "The magnificent central hall of the mansion, adorned with crystal chandeliers and marble floors.",
		Lighting:        "bright",
		AmbientFearRate: 0.5,
		SpawnPoints:     []Vector2D{{X: 320, Y: 400}, {X: 200, Y: 350}, {X: 440, Y: 350}},
		Connections: []RoomConnection{
			{ToRoom: "library"},
			{ToRoom: "dining_hall"},
			{ToRoom: "conservatory"},
			{ToRoom: "gallery"},
		},
		Interactables: []Interactable{
			{
				ID:          "chandelier",
				Name:        "Crystal Chandelier",
				Type:        "decoration",
				Description: "A magnificent crystal chandelier hanging from the ceiling.",
				Clues: []string{
					"The chandelier is securely fastened to the ceiling.",
					"Crystal prisms catch the light beautifully.",
				},
			},
			{
				ID:          "grand_piano",
				Name:        "Grand Piano",
				Type:        "furniture",
				Description: "An elegant grand piano, perfectly tuned for the occasion.",
				Clues: []string{
					"The piano keys are covered with a thin layer of dust.",
					"Someone has been playing recently - the stool is pulled out.",
				},
			},
		},
	},
	"library": {
		ID:              "library",
		DisplayName:     "Library",
		Description:     "Walls lined with ancient books, leather armchairs, and a massive oak desk.",
		Lighting:        "normal",
		AmbientFearRate: 1.0,
		SpawnPoints:     []Vector2D{{X: 100, Y: 400}},
		Connections: []RoomConnection{
			{ToRoom: "grand_ballroom"},
			{ToRoom: "study", Secret: true},
		},
		Interactables: []Interactable{
			{
				ID:          "ritual_book",
				Name:        "Ancient Tome",
				Type:        "ritual_item",
				Description: "An ancient book bound in cracked leather.",
				Clues: []string{
					"The book contains strange symbols and incantations.",
					"This appears to be part of a larger ritual.",
				},
			},
			{
				ID:          "bookshelf_secret",
				Name:        "Ancient Bookshelf",
				Type:        "door",
				Description: "A bookshelf that seems slightly out of place.",
				Clues: []string{
					"One of the books looks like it might be a lever.",
					"There's a faint draft coming from behind this shelf.",
				},
			},
		},
	},
	"dining_hall": {
		ID:              "dining_hall",
		DisplayName:     "Dining Hall",
		Description:     "A long mahogany table set for dinner, with crystal glassware and silver candelabras.",
		Lighting:        "normal",
		AmbientFearRate: 0.8,
		SpawnPoints:     []Vector2D{{X: 100, Y: 400}},
		Connections: []RoomConnection{
			{ToRoom: "grand_ballroom"},
			{ToRoom: "kitchen"},
			{ToRoom: "billiard_room"},
		},
		Interactables: []Interactable{
			{
				ID:          "dining_table",
				Name:        "Mahogany Dining Table",
				Type:        "furniture",
				Description: "A magnificent table that could seat twenty guests.",
				Clues: []string{
					"Place settings are arranged for a formal dinner.",
					"The tablecloth has a few small stains.",
				},
			},
		},
	},
	"conservatory": {
		ID:              "conservatory",
		DisplayName:     "Conservatory",
		Description:     "A glass-walled room filled with exotic plants and elegant wicker furniture.",
		Lighting:        "bright",
		AmbientFearRate: 0.6,
		SpawnPoints:     []Vector2D{{X: 320, Y: 400}},
		Connections: []RoomConnection{
			{ToRoom: "grand_ballroom"},
		},
		Interactables: []Interactable{
			{
				ID:          "tropical_plants",
				Name:        "Tropical Plants",
				Type:        "decoration",
				Description: "Exotic plants with large leaves and vibrant flowers.",
				Clues: []string{
					"One of the plants appears to have been recently disturbed.",
				},
			},
		},
	},
	"kitchen": {
		ID:              "kitchen",
		DisplayName:     "Kitchen",
		Description:     "Copper pots hang over a cold stove; the servants left in a hurry.",
		Lighting:        "dim",
		AmbientFearRate: 1.2,
		SpawnPoints:     []Vector2D{{X: 320, Y: 380}},
		Connections: []RoomConnection{
			{ToRoom: "dining_hall"},
			{ToRoom: "wine_cellar"},
		},
		Interactables: []Interactable{
			{
				ID:          "knife_block",
				Name:        "Knife Block",
				Type:        "object",
				Description: "A wooden block of carving knives.",
				Clues:       []string{"One of the knives is missing."},
			},
		},
	},
	"study": {
		ID:              "study",
		DisplayName:     "Study",
		Description:     "A private office with a heavy desk, its drawers locked tight.",
		Lighting:        "normal",
		AmbientFearRate: 1.0,
		SpawnPoints:     []Vector2D{{X: 280, Y: 360}},
		Connections: []RoomConnection{
			{ToRoom: "library", Secret: true},
			{ToRoom: "master_bedroom"},
		},
		Interactables: []Interactable{
			{
				ID:          "ledger",
				Name:        "Estate Ledger",
				Type:        "clue",
				Description: "A ledger of the estate's accounts, open to last month.",
				Clues:       []string{"Several large payments are marked only with initials."},
			},
		},
	},
	"master_bedroom": {
		ID:              "master_bedroom",
		DisplayName:     "Master Bedroom",
		Description:     "The late owner's bedroom, preserved exactly as it was left.",
		Lighting:        "dim",
		AmbientFearRate: 1.5,
		SpawnPoints:     []Vector2D{{X: 300, Y: 380}},
		Connections: []RoomConnection{
			{ToRoom: "study"},
			{ToRoom: "attic"},
		},
		Interactables: []Interactable{
			{
				ID:          "portrait",
				Name:        "Family Portrait",
				Type:        "decoration",
				Description: "A portrait whose eyes seem to follow you.",
				Clues:       []string{"The canvas has been slashed and clumsily repaired."},
			},
		},
	},
	"wine_cellar": {
		ID:              "wine_cellar",
		DisplayName:     "Wine Cellar",
		Description:     "Dark, damp vaults beneath the kitchen, stacked with dusty bottles.",
		Lighting:        "dark",
		AmbientFearRate: 2.0,
		SpawnPoints:     []Vector2D{{X: 320, Y: 400}},
		Connections: []RoomConnection{
			{ToRoom: "kitchen"},
			{ToRoom: "billiard_room", Locked: true},
		},
		Interactables: []Interactable{
			{
				ID:          "wine_racks",
				Name:        "Wine Racks",
				Type:        "furniture",
				Description: "Racks of vintage bottles under a blanket of dust.",
				Clues:       []string{"A clean circle in the dust marks a recently removed bottle."},
			},
		},
	},
	"gallery": {
		ID:              "gallery",
		DisplayName:     "Gallery",
		Description:     "A long corridor of ancestral paintings and marble busts.",
		Lighting:        "normal",
		AmbientFearRate: 0.9,
		SpawnPoints:     []Vector2D{{X: 320, Y: 400}},
		Connections: []RoomConnection{
			{ToRoom: "grand_ballroom"},
			{ToRoom: "chapel"},
		},
		Interactables: []Interactable{
			{
				ID:          "marble_bust",
				Name:        "Marble Bust",
				Type:        "decoration",
				Description: "A bust of the mansion's founder.",
				Clues:       []string{"The bust has been turned to face the wall."},
			},
		},
	},
	"chapel": {
		ID:              "chapel",
		DisplayName:     "Chapel",
		Description:     "A small family chapel, its candles long since burned out.",
		Lighting:        "dim",
		AmbientFearRate: 1.3,
		SpawnPoints:     []Vector2D{{X: 320, Y: 420}},
		Connections: []RoomConnection{
			{ToRoom: "gallery"},
		},
		Interactables: []Interactable{
			{
				ID:          "altar",
				Name:        "Stone Altar",
				Type:        "ritual_item",
				Description: "A cold stone altar beneath a stained-glass window.",
				Clues:       []string{"Wax from fresh candles has dripped onto the stone."},
			},
		},
	},
	"attic": {
		ID:              "attic",
		DisplayName:     "Attic",
		Description:     "Dusty rafters and forgotten trunks under a low, creaking roof.",
		Lighting:        "dark",
		AmbientFearRate: 2.5,
		SpawnPoints:     []Vector2D{{X: 320, Y: 400}},
		Connections: []RoomConnection{
			{ToRoom: "master_bedroom"},
		},
		Interactables: []Interactable{
			{
				ID:          "steamer_trunk",
				Name:        "Steamer Trunk",
				Type:        "clue",
				Description: "A travel trunk plastered with faded labels.",
				Clues:       []string{"The trunk is packed as if someone planned to leave in a hurry."},
			},
		},
	},
	"billiard_room": {
		ID:              "billiard_room",
		DisplayName:     "Billiard Room",
		Description:     "A felt-topped table under a low lamp, cues racked along the wall.",
		Lighting:        "normal",
		AmbientFearRate: 0.7,
		SpawnPoints:     []Vector2D{{X: 320, Y: 400}},
		Connections: []RoomConnection{
			{ToRoom: "dining_hall"},
			{ToRoom: "wine_cellar", Locked: true},
		},
		Interactables: []Interactable{
			{
				ID:          "billiard_table",
				Name:        "Billiard Table",
				Type:        "furniture",
				Description: "The balls are racked mid-game.",
				Clues:       []string{"Two cues lie crossed on the felt."},
			},
		},
	},
}

func getRoomData(roomID string) *RoomData {
	return mansionLayout[roomID]
}

func findConnection(fromRoom, toRoom string) *RoomConnection {
	room := getRoomData(fromRoom)
	if room == nil {
		return nil
	}
	for i := range room.Connections {
		if room.Connections[i].ToRoom == toRoom {
			return &room.Connections[i]
		}
	}
	return nil
}

func roomsAdjacent(roomA, roomB string) bool {
	return findConnection(roomA, roomB) != nil
}

func connectedRooms(roomID string) []string {
	room := getRoomData(roomID)
	if room == nil {
		return nil
	}
	out := make([]string, 0, len(room.Connections))
	for _, conn := range room.Connections {
		out = append(out, conn.ToRoom)
	}
	return out
}

func roomSpawnPoint(roomID string) Vector2D {
	room := getRoomData(roomID)
	if room == nil || len(room.SpawnPoints) == 0 {
		return Vector2D{}
	}
	return room.SpawnPoints[0]
}
