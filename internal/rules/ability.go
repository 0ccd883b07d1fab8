package rules

// Ability identifies one of the six ability scores
type Ability string

const (
	AbilityStrength     Ability = "STR"
	AbilityDexterity    Ability = "DEX"
	AbilityConstitution Ability = "CON"
	AbilityIntelligence Ability = "INT"
	AbilityWisdom       Ability = "WIS"
	AbilityCharisma     Ability = "CHA"
)

// Abilities lists the six abilities in standard order
var Abilities = []Ability{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

// AbilityModifier converts an ability score to its modifier using floor
// division, so 9 gives -1 and 7 gives -2.
func AbilityModifier(score int) int {
	d := score - 10
	if d >= 0 {
		return d / 2
	}
	return (d - 1) / 2
}

// ProficiencyBonus returns the proficiency bonus for a character level
func ProficiencyBonus(level int) int {
	if level < 1 {
		return 0
	}
	return 2 + (level-1)/4
}

// CharacterSheet is the narrow read-only view of a character that combat
// needs. The surrounding system's character type implements it; the engine
// never writes back through it.
type CharacterSheet interface {
	ID() string
	Name() string
	AbilityModifier(ability Ability) int
	CurrentHP() int
	MaxHP() int
	ArmorClass() int
	ProficiencyBonus() int
}

// StaticSheet is a fixed-value CharacterSheet for tests and the simulator
type StaticSheet struct {
	SheetID    string
	SheetName  string
	Modifiers  map[Ability]int
	HP         int
	HPMax      int
	AC         int
	Proficient int
}

var _ CharacterSheet = (*StaticSheet)(nil)

func (s *StaticSheet) ID() string   { return s.SheetID }
func (s *StaticSheet) Name() string { return s.SheetName }

func (s *StaticSheet) AbilityModifier(ability Ability) int {
	return s.Modifiers[ability]
}

func (s *StaticSheet) CurrentHP() int        { return s.HP }
func (s *StaticSheet) MaxHP() int            { return s.HPMax }
func (s *StaticSheet) ArmorClass() int       { return s.AC }
func (s *StaticSheet) ProficiencyBonus() int { return s.Proficient }
