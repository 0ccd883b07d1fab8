// Command simulator runs a scripted combat encounter end to end: it
// builds a party, pits it against a group of monsters from the bestiary,
// and plays rounds until one side falls or the party retreats.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/BlakeDanielson/SoloRelms-sub001/internal/config"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/dice"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/domain/combat"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/repositories/encounters"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/rules"
	bestService "github.com/BlakeDanielson/SoloRelms-sub001/internal/services/bestiary"
	encService "github.com/BlakeDanielson/SoloRelms-sub001/internal/services/encounter"
)

func main() {
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	initLogger(cfg.LogLevel)

	roller := newRoller(cfg)
	repo, cleanup, err := newRepository(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up encounter storage")
	}
	defer cleanup()

	bestiarySvc := bestService.NewService(&bestService.ServiceConfig{})
	svc := encService.NewService(&encService.ServiceConfig{
		Repository: repo,
		Bestiary:   bestiarySvc,
		Roller:     roller,
		Logger:     &log.Logger,
	})

	if err := run(context.Background(), cfg, svc, bestiarySvc, roller); err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}
}

func initLogger(level string) {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	logLevel := zerolog.InfoLevel
	if lvl, err := zerolog.ParseLevel(level); err == nil && level != "" {
		logLevel = lvl
	}
	zerolog.SetGlobalLevel(logLevel)
}

func newRoller(cfg *config.Config) dice.Roller {
	if cfg.RNGSeed != 0 {
		log.Info().Int64("seed", cfg.RNGSeed).Msg("using seeded dice roller")
		return dice.NewSeededRoller(cfg.RNGSeed)
	}
	return dice.NewRandomRoller()
}

// newRepository picks the storage backend: Postgres when a DSN is set,
// Redis when an address is set, memory otherwise.
func newRepository(cfg *config.Config) (encounters.Repository, func(), error) {
	noop := func() {}

	if cfg.PostgresDSN != "" {
		ctx := context.Background()
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}
		if _, err := pool.Exec(ctx, encounters.Schema); err != nil {
			pool.Close()
			return nil, noop, err
		}
		log.Info().Msg("using postgres encounter storage")
		return encounters.NewPostgresRepository(pool), pool.Close, nil
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, noop, err
		}
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis encounter storage")
		return encounters.NewRedisRepository(&encounters.RedisRepoConfig{Client: client}), func() { _ = client.Close() }, nil
	}

	log.Info().Msg("using in-memory encounter storage")
	return encounters.NewInMemoryRepository(), noop, nil
}

// buildParty rolls up a fighter-style character sheet per party member
func buildParty(cfg *config.Config, roller dice.Roller) ([]rules.CharacterSheet, error) {
	sheets := make([]rules.CharacterSheet, 0, cfg.Simulator.PartySize)

	for i := 1; i <= cfg.Simulator.PartySize; i++ {
		scores, err := rules.RollAllAbilityScores(roller)
		if err != nil {
			return nil, err
		}

		modifiers := make(map[rules.Ability]int, len(rules.Abilities))
		for j, ability := range rules.Abilities {
			modifiers[ability] = rules.AbilityModifier(scores[j].Total)
		}

		hp, err := rules.RollHitPoints(roller, 10, modifiers[rules.AbilityConstitution], cfg.Simulator.PartyLevel)
		if err != nil {
			return nil, err
		}

		sheet := &rules.StaticSheet{
			SheetID:    fmt.Sprintf("hero-%d", i),
			SheetName:  fmt.Sprintf("Hero %d", i),
			Modifiers:  modifiers,
			HP:         hp.Total,
			HPMax:      hp.Total,
			AC:         16,
			Proficient: rules.ProficiencyBonus(cfg.Simulator.PartyLevel),
		}
		sheets = append(sheets, sheet)

		log.Info().
			Str("id", sheet.SheetID).
			Int("hp", sheet.HPMax).
			Int("str_mod", modifiers[rules.AbilityStrength]).
			Msg("rolled up party member")
	}

	return sheets, nil
}

func run(ctx context.Context, cfg *config.Config, svc encService.Service, bestiarySvc bestService.Service, roller dice.Roller) error {
	template, err := bestiarySvc.Get(cfg.Simulator.MonsterKey)
	if err != nil {
		return err
	}
	if len(template.Attacks) == 0 {
		return fmt.Errorf("monster %s has no attacks to simulate", template.Key)
	}
	monsterAttack := template.Attacks[0]

	party, err := buildParty(cfg, roller)
	if err != nil {
		return err
	}

	enc, err := svc.CreateEncounter(ctx, &encService.CreateEncounterInput{
		Characters: party,
		Monsters: []encService.MonsterGroup{
			{Key: cfg.Simulator.MonsterKey, Count: cfg.Simulator.MonsterCount},
		},
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("encounter_id", enc.ID).
		Int("party", cfg.Simulator.PartySize).
		Str("monster", template.Name).
		Int("count", cfg.Simulator.MonsterCount).
		Msg("encounter ready")

	enc, err = svc.RollInitiative(ctx, enc.ID)
	if err != nil {
		return err
	}

	sheetsByID := make(map[string]rules.CharacterSheet, len(party))
	for _, sheet := range party {
		sheetsByID[sheet.ID()] = sheet
	}

	for enc.State == combat.StateInProgress {
		if enc.Round > cfg.Simulator.MaxRounds {
			log.Warn().Int("round", enc.Round).Msg("round limit reached, party retreats")
			enc, err = svc.EndEncounter(ctx, enc.ID)
			if err != nil {
				return err
			}
			break
		}

		actor := enc.CurrentParticipant()
		if actor == nil || !actor.IsActive {
			if enc, err = svc.AdvanceTurn(ctx, enc.ID); err != nil {
				return err
			}
			continue
		}

		input := &encService.AttackInput{
			EncounterID: enc.ID,
			AttackerID:  actor.ID,
		}
		if actor.Kind == combat.KindCharacter {
			target := firstActive(enc, combat.KindEnemy)
			sheet := sheetsByID[actor.ID]
			strMod := sheet.AbilityModifier(rules.AbilityStrength)
			input.TargetID = target.ID
			input.AttackBonus = strMod + sheet.ProficiencyBonus()
			input.DamageNotation = fmt.Sprintf("1d8%+d", strMod)
			input.DamageType = "slashing"
		} else {
			target := firstActive(enc, combat.KindCharacter)
			input.TargetID = target.ID
			input.AttackBonus = monsterAttack.AttackBonus
			input.DamageNotation = monsterAttack.DamageNotation
			input.DamageType = monsterAttack.DamageType
		}

		result, err := svc.SimulateAttack(ctx, input)
		if err != nil {
			return err
		}
		logAttack(actor, input, result)
		enc = result.Encounter

		if enc.State != combat.StateInProgress {
			break
		}
		if enc, err = svc.AdvanceTurn(ctx, enc.ID); err != nil {
			return err
		}
	}

	summarize(enc)
	return nil
}

// firstActive picks the targeting order: active participants of the
// given side in turn order
func firstActive(enc *combat.Encounter, kind combat.Kind) *combat.Participant {
	for _, id := range enc.TurnOrder {
		p := enc.Participants[id]
		if p.Kind == kind && p.IsActive {
			return p
		}
	}
	return nil
}

func logAttack(actor *combat.Participant, input *encService.AttackInput, result *encService.AttackResult) {
	evt := log.Info().
		Str("attacker", actor.Name).
		Str("target", input.TargetID).
		Int("attack_total", result.Outcome.AttackRoll.Total)

	switch {
	case !result.Outcome.IsHit:
		evt.Msg("attack misses")
	case result.Outcome.IsCritical:
		evt.Int("damage", result.Outcome.DamageRoll.Total).Msg("critical hit")
	default:
		evt.Int("damage", result.Outcome.DamageRoll.Total).Msg("attack hits")
	}

	if result.TargetEliminated {
		log.Info().Str("target", input.TargetID).Msg("target falls")
	}
}

func summarize(enc *combat.Encounter) {
	evt := log.Info().
		Str("encounter_id", enc.ID).
		Str("result", enc.Result).
		Int("rounds", enc.Round).
		Int("xp_awarded", enc.XPAwarded)

	if len(enc.LootAwarded) > 0 {
		loot := make([]string, 0, len(enc.LootAwarded))
		for _, award := range enc.LootAwarded {
			loot = append(loot, fmt.Sprintf("%dx %s", award.Amount, award.Name))
		}
		evt = evt.Strs("loot", loot)
	}
	evt.Msg("encounter finished")

	for _, p := range enc.Participants {
		log.Info().
			Str("participant", p.Name).
			Str("kind", string(p.Kind)).
			Int("hp", p.CurrentHP).
			Int("max_hp", p.MaxHP).
			Bool("standing", p.IsActive).
			Msg("final state")
	}
}
