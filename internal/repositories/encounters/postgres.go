package encounters

import (
	"context"
	stderrors "errors"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BlakeDanielson/SoloRelms-sub001/internal/domain/combat"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/errors"
)

// Schema is the table the Postgres repository expects. Applied by the
// caller; the repository never migrates on its own.
const Schema = `
CREATE TABLE IF NOT EXISTS encounters (
    id         TEXT PRIMARY KEY,
    state      TEXT NOT NULL,
    snapshot   JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS encounters_state_idx ON encounters (state);
`

const (
	insertEncounterQuery = `
        INSERT INTO encounters (id, state, snapshot, updated_at)
        VALUES ($1, $2, $3, now())
    `
	updateEncounterQuery = `
        UPDATE encounters
        SET state = $2, snapshot = $3, updated_at = now()
        WHERE id = $1
    `
	getEncounterQuery    = `SELECT snapshot FROM encounters WHERE id = $1`
	deleteEncounterQuery = `DELETE FROM encounters WHERE id = $1`
	listActiveQuery      = `
        SELECT snapshot FROM encounters
        WHERE state NOT IN ('victory', 'defeat', 'retreat')
        ORDER BY updated_at
    `
	getManyQuery = `SELECT id, snapshot FROM encounters WHERE id = ANY($1)`
)

// uniqueViolation is the Postgres error code for duplicate primary keys
const uniqueViolation = "23505"

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres-backed encounter repository
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	if pool == nil {
		panic("postgres pool is required")
	}
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, encounter *combat.Encounter) error {
	if encounter == nil {
		return errors.InvalidArgument("encounter cannot be nil")
	}

	raw, err := marshalEncounter(encounter)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, insertEncounterQuery, encounter.ID, string(encounter.State), raw)
	if err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errors.AlreadyExistsf("encounter %s already exists", encounter.ID)
		}
		return errors.Wrapf(err, "inserting encounter %s", encounter.ID)
	}

	return nil
}

func (r *postgresRepository) Get(ctx context.Context, id string) (*combat.Encounter, error) {
	var raw []byte
	err := pgxscan.Get(ctx, r.pool, &raw, getEncounterQuery, id)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NotFoundf("encounter %s not found", id)
		}
		return nil, errors.Wrapf(err, "getting encounter %s", id)
	}

	return unmarshalEncounter(raw)
}

func (r *postgresRepository) Update(ctx context.Context, encounter *combat.Encounter) error {
	if encounter == nil {
		return errors.InvalidArgument("encounter cannot be nil")
	}

	raw, err := marshalEncounter(encounter)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, updateEncounterQuery, encounter.ID, string(encounter.State), raw)
	if err != nil {
		return errors.Wrapf(err, "updating encounter %s", encounter.ID)
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFoundf("encounter %s not found", encounter.ID)
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, deleteEncounterQuery, id)
	if err != nil {
		return errors.Wrapf(err, "deleting encounter %s", id)
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFoundf("encounter %s not found", id)
	}

	return nil
}

func (r *postgresRepository) ListActive(ctx context.Context) ([]*combat.Encounter, error) {
	var raws [][]byte
	err := pgxscan.Select(ctx, r.pool, &raws, listActiveQuery)
	if err != nil {
		return nil, errors.Wrap(err, "listing active encounters")
	}

	encounters := make([]*combat.Encounter, 0, len(raws))
	for _, raw := range raws {
		encounter, err := unmarshalEncounter(raw)
		if err != nil {
			return nil, err
		}
		encounters = append(encounters, encounter)
	}

	return encounters, nil
}

func (r *postgresRepository) GetMany(ctx context.Context, ids []string) ([]*combat.Encounter, error) {
	type row struct {
		ID       string `db:"id"`
		Snapshot []byte `db:"snapshot"`
	}

	var rows []row
	if err := pgxscan.Select(ctx, r.pool, &rows, getManyQuery, ids); err != nil {
		return nil, errors.Wrap(err, "getting encounters")
	}

	byID := make(map[string][]byte, len(rows))
	for _, rw := range rows {
		byID[rw.ID] = rw.Snapshot
	}

	// Results come back in the requested order, and any gap fails the
	// whole call.
	encounters := make([]*combat.Encounter, 0, len(ids))
	for _, id := range ids {
		raw, ok := byID[id]
		if !ok {
			return nil, errors.NotFoundf("encounter %s not found", id)
		}
		encounter, err := unmarshalEncounter(raw)
		if err != nil {
			return nil, err
		}
		encounters = append(encounters, encounter)
	}

	return encounters, nil
}
