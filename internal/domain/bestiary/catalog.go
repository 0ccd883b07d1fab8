package bestiary

import (
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/domain/combat"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/rules"
)

// Catalog keys for the built-in monsters
const (
	KeyGoblin      = "goblin"
	KeySkeleton    = "skeleton"
	KeyZombie      = "zombie"
	KeyBandit      = "bandit"
	KeyOrc         = "orc"
	KeyDireWolf    = "dire_wolf"
	KeyGiantSpider = "giant_spider"
	KeyOwlbear     = "owlbear"
)

// Catalog returns the built-in stat blocks keyed by monster key. Callers
// get a fresh map; templates themselves are shared and must not be
// mutated.
func Catalog() map[string]EnemyTemplate {
	templates := map[string]EnemyTemplate{
		KeyGoblin: {
			Key:             KeyGoblin,
			Name:            "Goblin",
			ChallengeRating: 0.25,
			XPValue:         50,
			MaxHP:           7,
			HitDice:         "2d6",
			AC:              15,
			Speed:           30,
			Abilities: map[rules.Ability]int{
				rules.AbilityStrength:     8,
				rules.AbilityDexterity:    14,
				rules.AbilityConstitution: 10,
				rules.AbilityIntelligence: 10,
				rules.AbilityWisdom:       8,
				rules.AbilityCharisma:     8,
			},
			Attacks: []AttackTemplate{
				{Name: "Scimitar", AttackBonus: 4, DamageNotation: "1d6+2", DamageType: "slashing"},
				{Name: "Shortbow", AttackBonus: 4, DamageNotation: "1d6+2", DamageType: "piercing"},
			},
			LootTable: []combat.LootEntry{
				{Name: "gold pieces", Amount: "2d4", Guaranteed: true},
				{Name: "scimitar", Chance: 0.25},
			},
		},
		KeySkeleton: {
			Key:             KeySkeleton,
			Name:            "Skeleton",
			ChallengeRating: 0.25,
			XPValue:         50,
			MaxHP:           13,
			HitDice:         "2d8+4",
			AC:              13,
			Speed:           30,
			Abilities: map[rules.Ability]int{
				rules.AbilityStrength:     10,
				rules.AbilityDexterity:    14,
				rules.AbilityConstitution: 15,
				rules.AbilityIntelligence: 6,
				rules.AbilityWisdom:       8,
				rules.AbilityCharisma:     5,
			},
			Attacks: []AttackTemplate{
				{Name: "Shortsword", AttackBonus: 4, DamageNotation: "1d6+2", DamageType: "piercing"},
				{Name: "Shortbow", AttackBonus: 4, DamageNotation: "1d6+2", DamageType: "piercing"},
			},
			LootTable: []combat.LootEntry{
				{Name: "bone dust", Guaranteed: true},
				{Name: "shortsword", Chance: 0.2},
			},
		},
		KeyZombie: {
			Key:             KeyZombie,
			Name:            "Zombie",
			ChallengeRating: 0.25,
			XPValue:         50,
			MaxHP:           22,
			HitDice:         "3d8+9",
			AC:              8,
			Speed:           20,
			Abilities: map[rules.Ability]int{
				rules.AbilityStrength:     13,
				rules.AbilityDexterity:    6,
				rules.AbilityConstitution: 16,
				rules.AbilityIntelligence: 3,
				rules.AbilityWisdom:       6,
				rules.AbilityCharisma:     5,
			},
			Attacks: []AttackTemplate{
				{Name: "Slam", AttackBonus: 3, DamageNotation: "1d6+1", DamageType: "bludgeoning"},
			},
			LootTable: []combat.LootEntry{
				{Name: "tattered rags", Chance: 0.5},
			},
		},
		KeyBandit: {
			Key:             KeyBandit,
			Name:            "Bandit",
			ChallengeRating: 0.125,
			XPValue:         25,
			MaxHP:           11,
			HitDice:         "2d8+2",
			AC:              12,
			Speed:           30,
			Abilities: map[rules.Ability]int{
				rules.AbilityStrength:     11,
				rules.AbilityDexterity:    12,
				rules.AbilityConstitution: 12,
				rules.AbilityIntelligence: 10,
				rules.AbilityWisdom:       10,
				rules.AbilityCharisma:     10,
			},
			Attacks: []AttackTemplate{
				{Name: "Scimitar", AttackBonus: 3, DamageNotation: "1d6+1", DamageType: "slashing"},
				{Name: "Light Crossbow", AttackBonus: 3, DamageNotation: "1d8+1", DamageType: "piercing"},
			},
			LootTable: []combat.LootEntry{
				{Name: "gold pieces", Amount: "3d6", Guaranteed: true},
				{Name: "healing potion", Chance: 0.1},
			},
		},
		KeyOrc: {
			Key:             KeyOrc,
			Name:            "Orc",
			ChallengeRating: 0.5,
			XPValue:         100,
			MaxHP:           15,
			HitDice:         "2d8+6",
			AC:              13,
			Speed:           30,
			Abilities: map[rules.Ability]int{
				rules.AbilityStrength:     16,
				rules.AbilityDexterity:    12,
				rules.AbilityConstitution: 16,
				rules.AbilityIntelligence: 7,
				rules.AbilityWisdom:       11,
				rules.AbilityCharisma:     10,
			},
			Attacks: []AttackTemplate{
				{Name: "Greataxe", AttackBonus: 5, DamageNotation: "1d12+3", DamageType: "slashing"},
				{Name: "Javelin", AttackBonus: 5, DamageNotation: "1d6+3", DamageType: "piercing"},
			},
			LootTable: []combat.LootEntry{
				{Name: "gold pieces", Amount: "2d6", Guaranteed: true},
				{Name: "greataxe", Chance: 0.3},
			},
		},
		KeyDireWolf: {
			Key:             KeyDireWolf,
			Name:            "Dire Wolf",
			ChallengeRating: 1,
			XPValue:         200,
			MaxHP:           37,
			HitDice:         "5d10+10",
			AC:              14,
			Speed:           50,
			Abilities: map[rules.Ability]int{
				rules.AbilityStrength:     17,
				rules.AbilityDexterity:    15,
				rules.AbilityConstitution: 15,
				rules.AbilityIntelligence: 3,
				rules.AbilityWisdom:       12,
				rules.AbilityCharisma:     7,
			},
			Attacks: []AttackTemplate{
				{Name: "Bite", AttackBonus: 5, DamageNotation: "2d6+3", DamageType: "piercing"},
			},
			LootTable: []combat.LootEntry{
				{Name: "wolf pelt", Guaranteed: true},
				{Name: "wolf fang", Amount: "1d4", Chance: 0.5},
			},
		},
		KeyGiantSpider: {
			Key:             KeyGiantSpider,
			Name:            "Giant Spider",
			ChallengeRating: 1,
			XPValue:         200,
			MaxHP:           26,
			HitDice:         "4d10+4",
			AC:              14,
			Speed:           30,
			Abilities: map[rules.Ability]int{
				rules.AbilityStrength:     14,
				rules.AbilityDexterity:    16,
				rules.AbilityConstitution: 12,
				rules.AbilityIntelligence: 2,
				rules.AbilityWisdom:       11,
				rules.AbilityCharisma:     4,
			},
			Attacks: []AttackTemplate{
				{Name: "Bite", AttackBonus: 5, DamageNotation: "1d8+3", DamageType: "piercing"},
			},
			LootTable: []combat.LootEntry{
				{Name: "spider silk", Amount: "1d6", Guaranteed: true},
				{Name: "venom sac", Chance: 0.35},
			},
		},
		KeyOwlbear: {
			Key:             KeyOwlbear,
			Name:            "Owlbear",
			ChallengeRating: 3,
			XPValue:         700,
			MaxHP:           59,
			HitDice:         "7d10+21",
			AC:              13,
			Speed:           40,
			Abilities: map[rules.Ability]int{
				rules.AbilityStrength:     20,
				rules.AbilityDexterity:    12,
				rules.AbilityConstitution: 17,
				rules.AbilityIntelligence: 3,
				rules.AbilityWisdom:       12,
				rules.AbilityCharisma:     7,
			},
			Attacks: []AttackTemplate{
				{Name: "Claws", AttackBonus: 7, DamageNotation: "2d8+5", DamageType: "slashing"},
				{Name: "Beak", AttackBonus: 7, DamageNotation: "1d10+5", DamageType: "piercing"},
			},
			LootTable: []combat.LootEntry{
				{Name: "owlbear feathers", Amount: "2d4", Guaranteed: true},
				{Name: "owlbear claw", Amount: "1d2", Chance: 0.6},
			},
		},
	}

	return templates
}
