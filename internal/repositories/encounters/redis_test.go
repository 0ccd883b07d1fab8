package encounters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/BlakeDanielson/SoloRelms-sub001/internal/domain/combat"
	dnderr "github.com/BlakeDanielson/SoloRelms-sub001/internal/errors"
)

type RedisRepoTestSuite struct {
	suite.Suite
	mockClient *redis.Client
	mock       redismock.ClientMock
	repo       Repository
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.mockClient, s.mock = redismock.NewClientMock()
	s.repo = NewRedisRepository(&RedisRepoConfig{
		Client: s.mockClient,
		TTL:    time.Hour,
	})
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) encounterFixture(id string) (*combat.Encounter, string) {
	enc := combat.NewEncounter(id)
	goblin, err := combat.NewEnemyParticipant(combat.EnemyConfig{
		ID:      "goblin-1",
		Name:    "Goblin",
		MaxHP:   7,
		AC:      15,
		XPValue: 50,
	})
	s.Require().NoError(err)
	s.Require().NoError(enc.AddParticipant(goblin))

	raw, err := marshalEncounter(enc)
	s.Require().NoError(err)
	return enc, string(raw)
}

func (s *RedisRepoTestSuite) TestCreate() {
	ctx := context.Background()
	enc, expectedData := s.encounterFixture("enc-1")

	// Happy path
	s.mock.ExpectExists("encounter:enc-1").SetVal(0)
	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("encounter:enc-1", expectedData, time.Hour).SetVal("OK")
	s.mock.ExpectSAdd("encounters:active", "enc-1").SetVal(1)
	s.mock.ExpectTxPipelineExec()

	s.NoError(s.repo.Create(ctx, enc))

	// Duplicate id
	s.mock.ExpectExists("encounter:enc-1").SetVal(1)
	s.True(dnderr.IsAlreadyExists(s.repo.Create(ctx, enc)))

	// Dependency error
	s.mock.ExpectExists("encounter:enc-1").SetErr(errors.New("redis error"))
	s.Error(s.repo.Create(ctx, enc))

	// Input validation
	s.True(dnderr.IsInvalidArgument(s.repo.Create(ctx, nil)))
}

func (s *RedisRepoTestSuite) TestCreateTerminalSkipsActiveSet() {
	ctx := context.Background()
	enc, _ := s.encounterFixture("enc-1")
	s.Require().NoError(enc.End(combat.ResultRetreat, 0, nil))

	raw, err := marshalEncounter(enc)
	s.Require().NoError(err)

	s.mock.ExpectExists("encounter:enc-1").SetVal(0)
	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("encounter:enc-1", string(raw), time.Hour).SetVal("OK")
	s.mock.ExpectSRem("encounters:active", "enc-1").SetVal(0)
	s.mock.ExpectTxPipelineExec()

	s.NoError(s.repo.Create(ctx, enc))
}

func (s *RedisRepoTestSuite) TestGet() {
	ctx := context.Background()
	_, storedData := s.encounterFixture("enc-1")

	// Happy path refreshes the TTL
	s.mock.ExpectGet("encounter:enc-1").SetVal(storedData)
	s.mock.ExpectExpire("encounter:enc-1", time.Hour).SetVal(true)

	got, err := s.repo.Get(ctx, "enc-1")
	s.Require().NoError(err)
	s.Equal("enc-1", got.ID)
	s.Equal(combat.StateNotStarted, got.State)
	s.Require().Contains(got.Participants, "goblin-1")
	s.Equal(7, got.Participants["goblin-1"].CurrentHP)

	// Missing key
	s.mock.ExpectGet("encounter:enc-404").RedisNil()
	_, err = s.repo.Get(ctx, "enc-404")
	s.True(dnderr.IsNotFound(err))

	// Dependency error
	s.mock.ExpectGet("encounter:enc-1").SetErr(errors.New("redis error"))
	_, err = s.repo.Get(ctx, "enc-1")
	s.Error(err)
}

func (s *RedisRepoTestSuite) TestUpdate() {
	ctx := context.Background()
	enc, _ := s.encounterFixture("enc-1")
	enc.Participants["goblin-1"].CurrentHP = 3

	raw, err := marshalEncounter(enc)
	s.Require().NoError(err)

	// Happy path
	s.mock.ExpectExists("encounter:enc-1").SetVal(1)
	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("encounter:enc-1", string(raw), time.Hour).SetVal("OK")
	s.mock.ExpectSAdd("encounters:active", "enc-1").SetVal(0)
	s.mock.ExpectTxPipelineExec()

	s.NoError(s.repo.Update(ctx, enc))

	// Missing key
	s.mock.ExpectExists("encounter:enc-1").SetVal(0)
	s.True(dnderr.IsNotFound(s.repo.Update(ctx, enc)))
}

func (s *RedisRepoTestSuite) TestDelete() {
	ctx := context.Background()

	// Happy path
	s.mock.ExpectTxPipeline()
	s.mock.ExpectDel("encounter:enc-1").SetVal(1)
	s.mock.ExpectSRem("encounters:active", "enc-1").SetVal(1)
	s.mock.ExpectTxPipelineExec()

	s.NoError(s.repo.Delete(ctx, "enc-1"))

	// Missing key
	s.mock.ExpectTxPipeline()
	s.mock.ExpectDel("encounter:enc-404").SetVal(0)
	s.mock.ExpectSRem("encounters:active", "enc-404").SetVal(0)
	s.mock.ExpectTxPipelineExec()

	s.True(dnderr.IsNotFound(s.repo.Delete(ctx, "enc-404")))
}

func (s *RedisRepoTestSuite) TestListActive() {
	ctx := context.Background()
	_, storedData := s.encounterFixture("enc-1")

	s.mock.ExpectSMembers("encounters:active").SetVal([]string{"enc-1"})
	s.mock.ExpectGet("encounter:enc-1").SetVal(storedData)
	s.mock.ExpectExpire("encounter:enc-1", time.Hour).SetVal(true)

	active, err := s.repo.ListActive(ctx)
	s.Require().NoError(err)
	s.Require().Len(active, 1)
	s.Equal("enc-1", active[0].ID)
}

func (s *RedisRepoTestSuite) TestListActiveEmpty() {
	ctx := context.Background()

	s.mock.ExpectSMembers("encounters:active").SetVal([]string{})

	active, err := s.repo.ListActive(ctx)
	s.Require().NoError(err)
	s.Empty(active)
}
