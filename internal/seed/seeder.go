package seed

import (
	"context"
	"errors"
	"strconv"

	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/skcvote/ballotd/internal/core"
	"github.com/skcvote/ballotd/pkg/json"
)

const (
	seedTotalVoters = 894
	seedActiveNow   = 136
)

// Seeder makes sure a fresh store serves a working default election. Every
// write is create-if-absent, so re-running it never clobbers live data.
type Seeder struct {
	kv     core.KV
	logger logrus.FieldLogger
}

func NewSeeder(injector *do.Injector) (*Seeder, error) {
	kv, err := do.Invoke[core.KV](injector)
	if err != nil {
		return nil, err
	}

	logger, err := do.Invoke[logrus.FieldLogger](injector)
	if err != nil {
		return nil, err
	}

	return &Seeder{
		kv:     kv,
		logger: logger.WithField("component", "seed.Seeder"),
	}, nil
}

func (s *Seeder) Ensure(ctx context.Context) error {
	if err := s.ensureStats(ctx); err != nil {
		return err
	}

	if err := s.ensureDefaultElection(ctx); err != nil {
		return err
	}

	if err := s.ensureDefaultRoster(ctx); err != nil {
		return err
	}

	s.logger.Info("Seed ensured")

	return nil
}

func (s *Seeder) ensureStats(ctx context.Context) error {
	bucket, err := s.kv.CreateBucket(ctx, core.BucketStats)
	if err != nil {
		return err
	}

	counters := map[string]int64{
		core.StatsKeyTotalVoters: seedTotalVoters,
		core.StatsKeyActiveNow:   seedActiveNow,
	}

	for key, value := range counters {
		if err := createIfAbsent(ctx, bucket, key, []byte(strconv.FormatInt(value, 10))); err != nil {
			return err
		}
	}

	return nil
}

func (s *Seeder) ensureDefaultElection(ctx context.Context) error {
	bucket, err := s.kv.CreateBucket(ctx, core.BucketElections)
	if err != nil {
		return err
	}

	election := core.Election{
		ID:   core.DefaultElectionID,
		Name: "Supreme Katipunan Council",
	}

	value, err := json.Marshal(election)
	if err != nil {
		return err
	}

	return createIfAbsent(ctx, bucket, election.ID, value)
}

func (s *Seeder) ensureDefaultRoster(ctx context.Context) error {
	bucket, err := s.kv.CreateBucket(ctx, core.BucketCandidates)
	if err != nil {
		return err
	}

	value, err := json.Marshal(defaultRoster())
	if err != nil {
		return err
	}

	if err := createIfAbsent(ctx, bucket, core.DefaultElectionID, value); err != nil {
		return err
	}

	ballots, err := s.kv.CreateBucket(ctx, core.BucketBallots)
	if err != nil {
		return err
	}

	return createIfAbsent(ctx, ballots, core.DefaultElectionID, []byte("[]"))
}

func (s *Seeder) HealthCheck() error {
	return nil
}

func (s *Seeder) Shutdown() error {
	return nil
}

func createIfAbsent(ctx context.Context, bucket core.KVBucket, key string, value []byte) error {
	_, err := bucket.Create(ctx, key, value)
	if err != nil && !errors.Is(err, core.ErrKeyExists) {
		return err
	}

	return nil
}

func defaultRoster() []core.Candidate {
	return []core.Candidate{
		{ID: "c1", ElectionID: core.DefaultElectionID, Position: "President", Name: "Ariana Grande", Party: "Partido Liwanag"},
		{ID: "c2", ElectionID: core.DefaultElectionID, Position: "President", Name: "Taylor Swift", Party: "Partido Tapat"},
		{ID: "c3", ElectionID: core.DefaultElectionID, Position: "Vice President", Name: "Sabrina Carpenter", Party: "Partido Liwanag"},
		{ID: "c4", ElectionID: core.DefaultElectionID, Position: "Vice President", Name: "Harry Styles", Party: "Partido Tapat"},
		{ID: "c5", ElectionID: core.DefaultElectionID, Position: "Secretary", Name: "Justin Bieber", Party: "Independent"},
	}
}
