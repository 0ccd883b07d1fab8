package encounters

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/BlakeDanielson/SoloRelms-sub001/internal/domain/combat"
	"github.com/BlakeDanielson/SoloRelms-sub001/internal/errors"
)

const (
	encounterKeyPrefix = "encounter:"
	activeSetKey       = "encounters:active"

	// defaultEncounterTTL keeps abandoned encounters from accumulating.
	// Every read refreshes it, so an encounter only expires after sitting
	// untouched for the full window.
	defaultEncounterTTL = 24 * time.Hour
)

type redisRepository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient // Required
	TTL    time.Duration         // Defaults to 24h
}

// NewRedisRepository creates a new Redis-backed encounter repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultEncounterTTL
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    ttl,
	}
}

func encounterKey(id string) string {
	return fmt.Sprintf("%s%s", encounterKeyPrefix, id)
}

func (r *redisRepository) Create(ctx context.Context, encounter *combat.Encounter) error {
	if encounter == nil {
		return errors.InvalidArgument("encounter cannot be nil")
	}

	exists, err := r.client.Exists(ctx, encounterKey(encounter.ID)).Result()
	if err != nil {
		return errors.Wrapf(err, "checking encounter %s in Redis", encounter.ID)
	}
	if exists > 0 {
		return errors.AlreadyExistsf("encounter %s already exists", encounter.ID)
	}

	return r.write(ctx, encounter)
}

func (r *redisRepository) Get(ctx context.Context, id string) (*combat.Encounter, error) {
	raw, err := r.client.Get(ctx, encounterKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("encounter %s not found", id)
		}
		return nil, errors.Wrapf(err, "getting encounter %s from Redis", id)
	}

	// Reads keep the encounter alive.
	if err := r.client.Expire(ctx, encounterKey(id), r.ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "refreshing TTL for encounter %s", id)
	}

	return unmarshalEncounter(raw)
}

func (r *redisRepository) Update(ctx context.Context, encounter *combat.Encounter) error {
	if encounter == nil {
		return errors.InvalidArgument("encounter cannot be nil")
	}

	exists, err := r.client.Exists(ctx, encounterKey(encounter.ID)).Result()
	if err != nil {
		return errors.Wrapf(err, "checking encounter %s in Redis", encounter.ID)
	}
	if exists == 0 {
		return errors.NotFoundf("encounter %s not found", encounter.ID)
	}

	return r.write(ctx, encounter)
}

// write stores the snapshot and keeps the active set in step with the
// encounter's state, atomically
func (r *redisRepository) write(ctx context.Context, encounter *combat.Encounter) error {
	raw, err := marshalEncounter(encounter)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, encounterKey(encounter.ID), string(raw), r.ttl)
	if encounter.State.Terminal() {
		pipe.SRem(ctx, activeSetKey, encounter.ID)
	} else {
		pipe.SAdd(ctx, activeSetKey, encounter.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "writing encounter %s to Redis", encounter.ID)
	}

	return nil
}

func (r *redisRepository) Delete(ctx context.Context, id string) error {
	pipe := r.client.TxPipeline()
	delCmd := pipe.Del(ctx, encounterKey(id))
	pipe.SRem(ctx, activeSetKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "deleting encounter %s from Redis", id)
	}

	if delCmd.Val() == 0 {
		return errors.NotFoundf("encounter %s not found", id)
	}
	return nil
}

func (r *redisRepository) ListActive(ctx context.Context) ([]*combat.Encounter, error) {
	ids, err := r.client.SMembers(ctx, activeSetKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "listing active encounters from Redis")
	}

	return r.GetMany(ctx, ids)
}

func (r *redisRepository) GetMany(ctx context.Context, ids []string) ([]*combat.Encounter, error) {
	encounters := make([]*combat.Encounter, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			encounter, err := r.Get(ctx, id)
			if err != nil {
				return err
			}
			encounters[i] = encounter
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return encounters, nil
}
