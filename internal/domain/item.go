package domain

// ItemType categorizes an item template
type ItemType string

const (
	ItemTypeJunk       ItemType = "JUNK"
	ItemTypeResource   ItemType = "RESOURCE"
	ItemTypeOre        ItemType = "ORE"
	ItemTypeArmor      ItemType = "ARMOR"
	ItemTypeWeapon     ItemType = "WEAPON"
	ItemTypeAmulet     ItemType = "AMULET"
	ItemTypePotion     ItemType = "POTION"
	ItemTypeConsumable ItemType = "CONSUMABLE"
	ItemTypeQuest      ItemType = "QUEST"
)

// ItemTypes lists every valid item type in display order
var ItemTypes = []ItemType{
	ItemTypeJunk,
	ItemTypeResource,
	ItemTypeOre,
	ItemTypeArmor,
	ItemTypeWeapon,
	ItemTypeAmulet,
	ItemTypePotion,
	ItemTypeConsumable,
	ItemTypeQuest,
}

// Valid reports whether t is one of the known item types
func (t ItemType) Valid() bool {
	for _, known := range ItemTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Item is an item template from the catalog. Read-only to the ledgers.
type Item struct {
	ID          int      `json:"item_id" db:"item_id"`
	Code        string   `json:"code" db:"code"`
	Name        string   `json:"name" db:"name"`
	Description string   `json:"description" db:"description"`
	ItemType    ItemType `json:"item_type" db:"item_type"`
	IsStacked   bool     `json:"is_stacked" db:"is_stacked"`
	IsSellable  bool     `json:"is_sellable" db:"is_sellable"`
	IsActive    bool     `json:"is_active" db:"is_active"`
	Cost        int      `json:"cost" db:"cost"` // Catalog sell price per unit
	MinLevel    int      `json:"min_level" db:"min_level"`
	BaseStats   Stats    `json:"base_stats"`
}

// Stats holds the nine named stats shared by templates (base values) and
// instances (per-copy bonuses, which may be negative).
type Stats struct {
	Strength     int `json:"strength"`
	Defense      int `json:"defense"`
	Dexterity    int `json:"dexterity"`
	Stamina      int `json:"stamina"`
	Intelligence int `json:"intelligence"`
	Spirit       int `json:"spirit"`
	Willpower    int `json:"willpower"`
	ItemSlots    int `json:"item_slots"`
	Luck         int `json:"luck"`
}

// Stat names in canonical order
const (
	StatStrength     = "strength"
	StatDefense      = "defense"
	StatDexterity    = "dexterity"
	StatStamina      = "stamina"
	StatIntelligence = "intelligence"
	StatSpirit       = "spirit"
	StatWillpower    = "willpower"
	StatItemSlots    = "item_slots"
	StatLuck         = "luck"
)

// StatNames lists the stat names in canonical order
var StatNames = []string{
	StatStrength,
	StatDefense,
	StatDexterity,
	StatStamina,
	StatIntelligence,
	StatSpirit,
	StatWillpower,
	StatItemSlots,
	StatLuck,
}

// Values returns the stats in StatNames order
func (s Stats) Values() []int {
	return []int{
		s.Strength,
		s.Defense,
		s.Dexterity,
		s.Stamina,
		s.Intelligence,
		s.Spirit,
		s.Willpower,
		s.ItemSlots,
		s.Luck,
	}
}

// Add returns the per-stat sum of s and o
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Strength:     s.Strength + o.Strength,
		Defense:      s.Defense + o.Defense,
		Dexterity:    s.Dexterity + o.Dexterity,
		Stamina:      s.Stamina + o.Stamina,
		Intelligence: s.Intelligence + o.Intelligence,
		Spirit:       s.Spirit + o.Spirit,
		Willpower:    s.Willpower + o.Willpower,
		ItemSlots:    s.ItemSlots + o.ItemSlots,
		Luck:         s.Luck + o.Luck,
	}
}

// StatLine is a single stat as shown in an item tooltip
type StatLine struct {
	Name  string `json:"name"`
	Base  int    `json:"base"`
	Bonus int    `json:"bonus"`
}

// Total returns base plus bonus
func (l StatLine) Total() int {
	return l.Base + l.Bonus
}

// StatLines pairs template stats with instance bonuses in canonical order
func StatLines(base, bonus Stats) []StatLine {
	baseVals := base.Values()
	bonusVals := bonus.Values()
	lines := make([]StatLine, len(StatNames))
	for i, name := range StatNames {
		lines[i] = StatLine{Name: name, Base: baseVals[i], Bonus: bonusVals[i]}
	}
	return lines
}
