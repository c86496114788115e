package model

// WowClass identifies one of the 13 playable classes. Values match the game ids.
type WowClass int

const (
	ClassWarrior     WowClass = 1
	ClassPaladin     WowClass = 2
	ClassHunter      WowClass = 3
	ClassRogue       WowClass = 4
	ClassPriest      WowClass = 5
	ClassDeathKnight WowClass = 6
	ClassShaman      WowClass = 7
	ClassMage        WowClass = 8
	ClassWarlock     WowClass = 9
	ClassMonk        WowClass = 10
	ClassDruid       WowClass = 11
	ClassDemonHunter WowClass = 12
	ClassEvoker      WowClass = 13
)

var classNames = map[WowClass]string{
	ClassWarrior:     "Warrior",
	ClassPaladin:     "Paladin",
	ClassHunter:      "Hunter",
	ClassRogue:       "Rogue",
	ClassPriest:      "Priest",
	ClassDeathKnight: "Death Knight",
	ClassShaman:      "Shaman",
	ClassMage:        "Mage",
	ClassWarlock:     "Warlock",
	ClassMonk:        "Monk",
	ClassDruid:       "Druid",
	ClassDemonHunter: "Demon Hunter",
	ClassEvoker:      "Evoker",
}

// classSpecs maps each class to its specialization ids.
var classSpecs = map[WowClass][]int{
	ClassWarrior:     {71, 72, 73},
	ClassPaladin:     {65, 66, 70},
	ClassHunter:      {253, 254, 255},
	ClassRogue:       {259, 260, 261},
	ClassPriest:      {256, 257, 258},
	ClassDeathKnight: {250, 251, 252},
	ClassShaman:      {262, 263, 264},
	ClassMage:        {62, 63, 64},
	ClassWarlock:     {265, 266, 267},
	ClassMonk:        {268, 269, 270},
	ClassDruid:       {102, 103, 104, 105},
	ClassDemonHunter: {577, 581},
	ClassEvoker:      {1467, 1468, 1473},
}

func (c WowClass) String() string {
	if n, ok := classNames[c]; ok {
		return n
	}
	return "Unknown"
}

// Valid reports whether c is one of the playable classes.
func (c WowClass) Valid() bool {
	_, ok := classNames[c]
	return ok
}

// Specs returns the specialization ids of the class.
func (c WowClass) Specs() []int {
	return classSpecs[c]
}

// HasSpec reports whether specID belongs to the class.
func (c WowClass) HasSpec(specID int) bool {
	for _, s := range classSpecs[c] {
		if s == specID {
			return true
		}
	}
	return false
}

// Role a character fills in the raid.
type Role string

const (
	RoleTank   Role = "Tank"
	RoleHealer Role = "Healer"
	RoleDPS    Role = "DPS"
)

// Character is a roster entry.
type Character struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Realm string   `json:"realm"`
	Class WowClass `json:"class"`
	Role  Role     `json:"role"`
	Main  bool     `json:"main"`
	// Priority is officer-only, 1-100, lower means higher priority.
	Priority *int   `json:"priority,omitempty"`
	PlayerID string `json:"player_id"`
}
