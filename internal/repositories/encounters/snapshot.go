package encounters

import (
	"encoding/json"
	"time"

	"github.com/BlakeDanielson/SoloRelms-sub001/internal/domain/combat"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/errors"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/rules"
)

// Data is the persisted form of an encounter. Domain types carry no
// serialization tags; every backend round-trips through this snapshot, so
// the stored shape changes only when this file does.
type Data struct {
	ID           string                      `json:"id"`
	State        string                      `json:"state"`
	Participants map[string]*participantData `json:"participants"`
	TurnOrder    []string                    `json:"turn_order"`
	Round        int                         `json:"round"`
	TurnIndex    int                         `json:"turn_index"`
	Log          []logEntryData              `json:"log"`
	Result       string                      `json:"result,omitempty"`
	XPAwarded    int                         `json:"xp_awarded"`
	LootAwarded  []lootAwardData             `json:"loot_awarded,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
	StartedAt    *time.Time                  `json:"started_at,omitempty"`
	EndedAt      *time.Time                  `json:"ended_at,omitempty"`
}

type participantData struct {
	ID                string          `json:"id"`
	Kind              string          `json:"kind"`
	Name              string          `json:"name"`
	MaxHP             int             `json:"max_hp"`
	CurrentHP         int             `json:"current_hp"`
	TempHP            int             `json:"temp_hp"`
	AC                int             `json:"ac"`
	Initiative        int             `json:"initiative"`
	InitiativeBonus   int             `json:"initiative_bonus"`
	FixedInitiative   *int            `json:"fixed_initiative,omitempty"`
	IsActive          bool            `json:"is_active"`
	Conditions        []conditionData `json:"conditions,omitempty"`
	Speed             int             `json:"speed"`
	MovementRemaining int             `json:"movement_remaining"`
	ActionUsed        bool            `json:"action_used"`
	BonusActionUsed   bool            `json:"bonus_action_used"`
	ReactionUsed      bool            `json:"reaction_used"`
	XPValue           int             `json:"xp_value"`
	LootTable         []lootEntryData `json:"loot_table,omitempty"`
	EliminatedAt      *time.Time      `json:"eliminated_at,omitempty"`
}

type conditionData struct {
	Name           string `json:"name"`
	DurationRounds int    `json:"duration_rounds"`
	SourceID       string `json:"source_id,omitempty"`
	SaveDC         int    `json:"save_dc,omitempty"`
	SaveAbility    string `json:"save_ability,omitempty"`
}

type lootEntryData struct {
	Name       string  `json:"name"`
	Amount     string  `json:"amount,omitempty"`
	Chance     float64 `json:"chance,omitempty"`
	Guaranteed bool    `json:"guaranteed,omitempty"`
}

type lootAwardData struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

type logEntryData struct {
	Round     int       `json:"round"`
	TurnIndex int       `json:"turn_index"`
	Kind      string    `json:"kind"`
	ActorID   string    `json:"actor_id,omitempty"`
	TargetID  string    `json:"target_id,omitempty"`
	Amount    int       `json:"amount,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	At        time.Time `json:"at"`
}

func toData(enc *combat.Encounter) *Data {
	if enc == nil {
		return nil
	}

	data := &Data{
		ID:           enc.ID,
		State:        string(enc.State),
		Participants: make(map[string]*participantData, len(enc.Participants)),
		TurnOrder:    append([]string{}, enc.TurnOrder...),
		Round:        enc.Round,
		TurnIndex:    enc.TurnIndex,
		Log:          make([]logEntryData, 0, len(enc.Log)),
		Result:       enc.Result,
		XPAwarded:    enc.XPAwarded,
		CreatedAt:    enc.CreatedAt,
		StartedAt:    enc.StartedAt,
		EndedAt:      enc.EndedAt,
	}

	for id, p := range enc.Participants {
		data.Participants[id] = toParticipantData(p)
	}
	for _, entry := range enc.Log {
		data.Log = append(data.Log, logEntryData{
			Round:     entry.Round,
			TurnIndex: entry.TurnIndex,
			Kind:      string(entry.Kind),
			ActorID:   entry.ActorID,
			TargetID:  entry.TargetID,
			Amount:    entry.Amount,
			Detail:    entry.Detail,
			At:        entry.At,
		})
	}
	for _, award := range enc.LootAwarded {
		data.LootAwarded = append(data.LootAwarded, lootAwardData{Name: award.Name, Amount: award.Amount})
	}

	return data
}

func toParticipantData(p *combat.Participant) *participantData {
	data := &participantData{
		ID:                p.ID,
		Kind:              string(p.Kind),
		Name:              p.Name,
		MaxHP:             p.MaxHP,
		CurrentHP:         p.CurrentHP,
		TempHP:            p.TempHP,
		AC:                p.AC,
		Initiative:        p.Initiative,
		InitiativeBonus:   p.InitiativeBonus,
		FixedInitiative:   p.FixedInitiative,
		IsActive:          p.IsActive,
		Speed:             p.Speed,
		MovementRemaining: p.MovementRemaining,
		ActionUsed:        p.Economy.ActionUsed,
		BonusActionUsed:   p.Economy.BonusActionUsed,
		ReactionUsed:      p.Economy.ReactionUsed,
		XPValue:           p.XPValue,
		EliminatedAt:      p.EliminatedAt,
	}

	for _, cond := range p.Conditions {
		data.Conditions = append(data.Conditions, conditionData{
			Name:           cond.Name,
			DurationRounds: cond.DurationRounds,
			SourceID:       cond.SourceID,
			SaveDC:         cond.SaveDC,
			SaveAbility:    string(cond.SaveAbility),
		})
	}
	for _, entry := range p.LootTable {
		data.LootTable = append(data.LootTable, lootEntryData{
			Name:       entry.Name,
			Amount:     entry.Amount,
			Chance:     entry.Chance,
			Guaranteed: entry.Guaranteed,
		})
	}

	return data
}

func toEncounter(data *Data) *combat.Encounter {
	if data == nil {
		return nil
	}

	enc := &combat.Encounter{
		ID:           data.ID,
		State:        combat.State(data.State),
		Participants: make(map[string]*combat.Participant, len(data.Participants)),
		TurnOrder:    append([]string{}, data.TurnOrder...),
		Round:        data.Round,
		TurnIndex:    data.TurnIndex,
		Log:          make([]combat.LogEntry, 0, len(data.Log)),
		Result:       data.Result,
		XPAwarded:    data.XPAwarded,
		CreatedAt:    data.CreatedAt,
		StartedAt:    data.StartedAt,
		EndedAt:      data.EndedAt,
	}

	for id, p := range data.Participants {
		enc.Participants[id] = toParticipant(p)
	}
	for _, entry := range data.Log {
		enc.Log = append(enc.Log, combat.LogEntry{
			Round:     entry.Round,
			TurnIndex: entry.TurnIndex,
			Kind:      combat.EventKind(entry.Kind),
			ActorID:   entry.ActorID,
			TargetID:  entry.TargetID,
			Amount:    entry.Amount,
			Detail:    entry.Detail,
			At:        entry.At,
		})
	}
	for _, award := range data.LootAwarded {
		enc.LootAwarded = append(enc.LootAwarded, combat.LootAward{Name: award.Name, Amount: award.Amount})
	}

	return enc
}

func toParticipant(data *participantData) *combat.Participant {
	p := &combat.Participant{
		ID:                data.ID,
		Kind:              combat.Kind(data.Kind),
		Name:              data.Name,
		MaxHP:             data.MaxHP,
		CurrentHP:         data.CurrentHP,
		TempHP:            data.TempHP,
		AC:                data.AC,
		Initiative:        data.Initiative,
		InitiativeBonus:   data.InitiativeBonus,
		FixedInitiative:   data.FixedInitiative,
		IsActive:          data.IsActive,
		Speed:             data.Speed,
		MovementRemaining: data.MovementRemaining,
		Economy: combat.ActionEconomy{
			ActionUsed:      data.ActionUsed,
			BonusActionUsed: data.BonusActionUsed,
			ReactionUsed:    data.ReactionUsed,
		},
		XPValue:      data.XPValue,
		EliminatedAt: data.EliminatedAt,
	}

	for _, cond := range data.Conditions {
		p.Conditions = append(p.Conditions, combat.Condition{
			Name:           cond.Name,
			DurationRounds: cond.DurationRounds,
			SourceID:       cond.SourceID,
			SaveDC:         cond.SaveDC,
			SaveAbility:    rules.Ability(cond.SaveAbility),
		})
	}
	for _, entry := range data.LootTable {
		p.LootTable = append(p.LootTable, combat.LootEntry{
			Name:       entry.Name,
			Amount:     entry.Amount,
			Chance:     entry.Chance,
			Guaranteed: entry.Guaranteed,
		})
	}

	return p
}

func marshalEncounter(enc *combat.Encounter) ([]byte, error) {
	raw, err := json.Marshal(toData(enc))
	if err != nil {
		return nil, errors.Wrapf(err, "marshaling encounter %s", enc.ID)
	}
	return raw, nil
}

func unmarshalEncounter(raw []byte) (*combat.Encounter, error) {
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrap(err, "unmarshaling encounter")
	}
	return toEncounter(&data), nil
}

// cloneEncounter deep-copies through the snapshot so callers can never
// alias stored state
func cloneEncounter(enc *combat.Encounter) *combat.Encounter {
	return toEncounter(toData(enc))
}
