package encounters

//go:generate mockgen -destination=mock/mock_repository.go -package=mockencrepo -source=repository.go

import (
	"context"

	"github.com/BlakeDanielson/SoloRelms-sub001/internal/domain/combat"
)

// Repository defines the interface for encounter storage operations.
// Implementations return deep copies; mutating a returned encounter never
// changes stored state until Update is called.
type Repository interface {
	// Create stores a new encounter
	Create(ctx context.Context, encounter *combat.Encounter) error

	// Get retrieves an encounter by ID
	Get(ctx context.Context, id string) (*combat.Encounter, error)

	// Update overwrites an existing encounter
	Update(ctx context.Context, encounter *combat.Encounter) error

	// Delete removes an encounter
	Delete(ctx context.Context, id string) error

	// ListActive retrieves all encounters that have not reached a
	// terminal state
	ListActive(ctx context.Context) ([]*combat.Encounter, error)

	// GetMany retrieves several encounters at once. A single missing id
	// fails the whole call.
	GetMany(ctx context.Context, ids []string) ([]*combat.Encounter, error)
}
