package combat

import "time"

// EventKind tags a combat log entry
type EventKind string

const (
	EventEncounterCreated       EventKind = "encounter_created"
	EventInitiativeRolled       EventKind = "initiative_rolled"
	EventTurnStarted            EventKind = "turn_started"
	EventDamageApplied          EventKind = "damage_applied"
	EventHealingApplied         EventKind = "healing_applied"
	EventConditionAdded         EventKind = "condition_added"
	EventConditionRemoved       EventKind = "condition_removed"
	EventConditionExpired       EventKind = "condition_expired"
	EventParticipantEliminated  EventKind = "participant_eliminated"
	EventParticipantReactivated EventKind = "participant_reactivated"
	EventEncounterEnded         EventKind = "encounter_ended"
)

// maxLogEntries bounds the log kept on an encounter snapshot
const maxLogEntries = 50

// LogEntry is one record in the append-only combat log. Fields are fixed
// rather than an open map so malformed records are unrepresentable.
type LogEntry struct {
	Round     int
	TurnIndex int
	Kind      EventKind
	ActorID   string
	TargetID  string
	Amount    int
	Detail    string
	At        time.Time
}

// appendLog records an entry, dropping the oldest entries past the cap
func (e *Encounter) appendLog(entry LogEntry) {
	entry.Round = e.Round
	entry.TurnIndex = e.TurnIndex
	entry.At = time.Now()
	e.Log = append(e.Log, entry)

	if len(e.Log) > maxLogEntries {
		e.Log = e.Log[len(e.Log)-maxLogEntries:]
	}
}
