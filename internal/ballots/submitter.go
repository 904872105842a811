package ballots

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/skcvote/ballotd/internal/candidates"
	"github.com/skcvote/ballotd/internal/core"
	"github.com/skcvote/ballotd/internal/elections"
)

// Submitter validates and persists one ballot per authenticated voter.
type Submitter struct {
	registry *elections.Registry
	roster   *candidates.Roster
	store    *Store
	stats    core.KVBucket

	logger logrus.FieldLogger
}

func NewSubmitter(injector *do.Injector) (*Submitter, error) {
	registry, err := do.Invoke[*elections.Registry](injector)
	if err != nil {
		return nil, err
	}

	roster, err := do.Invoke[*candidates.Roster](injector)
	if err != nil {
		return nil, err
	}

	store, err := do.Invoke[*Store](injector)
	if err != nil {
		return nil, err
	}

	kv, err := do.Invoke[core.KV](injector)
	if err != nil {
		return nil, err
	}

	stats, err := kv.CreateBucket(context.Background(), core.BucketStats)
	if err != nil {
		return nil, err
	}

	logger, err := do.Invoke[logrus.FieldLogger](injector)
	if err != nil {
		return nil, err
	}

	return &Submitter{
		registry: registry,
		roster:   roster,
		store:    store,
		stats:    stats,
		logger:   logger.WithField("component", "ballots.Submitter"),
	}, nil
}

// Submit checks the voting gate, validates every selection against the
// roster's allow-list, enforces one ballot per voter and appends the ballot.
// A ballot covering fewer positions than the election offers is accepted;
// completeness is the caller's concern.
func (s *Submitter) Submit(ctx context.Context, electionID, voterID string, selections map[string]string) (core.Receipt, error) {
	election, err := s.registry.Get(ctx, electionID)
	if err != nil {
		return core.Receipt{}, err
	}

	if elections.Status(election, time.Now()) == core.StatusClosed {
		return core.Receipt{}, core.VotingClosedError{EndAt: election.EndAt}
	}

	roster, err := s.roster.ListByElection(ctx, electionID)
	if err != nil {
		return core.Receipt{}, err
	}

	if err := validateSelections(selections, candidates.AllowList(roster)); err != nil {
		return core.Receipt{}, err
	}

	ballot := core.Ballot{
		ID:          uuid.NewString(),
		ElectionID:  electionID,
		VoterID:     voterID,
		ReceiptID:   NewReceiptID(),
		SubmittedAt: time.Now().UTC(),
		Selections:  selections,
	}

	if err := s.store.ClaimVoter(ctx, electionID, voterID, ballot.ReceiptID); err != nil {
		return core.Receipt{}, err
	}

	if err := s.store.Append(ctx, ballot); err != nil {
		return core.Receipt{}, err
	}

	// The ballot is recorded; a failed counter bump must not fail the submit.
	if _, err := s.stats.Incr(ctx, core.StatsKeyTotalVoters, 1); err != nil {
		s.logger.WithError(err).Warn("Failed to bump voter counter")
	}

	s.logger.WithFields(logrus.Fields{
		"electionId": electionID,
		"ballotId":   ballot.ID,
	}).Info("Ballot accepted")

	return core.Receipt{
		ReceiptID:   ballot.ReceiptID,
		SubmittedAt: ballot.SubmittedAt,
	}, nil
}

func (s *Submitter) HealthCheck() error {
	return nil
}

func (s *Submitter) Shutdown() error {
	return nil
}

// validateSelections rejects the ballot if any pair is absent from the
// allow-list. Positions are checked in sorted order so the reported failing
// pair is deterministic.
func validateSelections(selections map[string]string, allowed map[string]map[string]struct{}) error {
	positions := make([]string, 0, len(selections))
	for position := range selections {
		positions = append(positions, position)
	}

	sort.Strings(positions)

	for _, position := range positions {
		names, ok := allowed[position]
		if !ok {
			return core.InvalidVoteError{Position: position}
		}

		if _, ok := names[selections[position]]; !ok {
			return core.InvalidVoteError{Position: position}
		}
	}

	return nil
}
