package ballots

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/do"
	"github.com/skcvote/ballotd/internal/core"
	"github.com/skcvote/ballotd/pkg/json"
)

// Store is the append-only ballot collection. Each election's ballots live
// in a single JSON value; appends replace the whole value through a
// revision-checked update so concurrent writers cannot lose ballots.
type Store struct {
	ballots core.KVBucket
	voters  core.KVBucket
}

func NewStore(injector *do.Injector) (*Store, error) {
	kv, err := do.Invoke[core.KV](injector)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	ballots, err := kv.CreateBucket(ctx, core.BucketBallots)
	if err != nil {
		return nil, err
	}

	voters, err := kv.CreateBucket(ctx, core.BucketVoters)
	if err != nil {
		return nil, err
	}

	return &Store{
		ballots: ballots,
		voters:  voters,
	}, nil
}

func (s *Store) ListByElection(ctx context.Context, electionID string) ([]core.Ballot, error) {
	value, err := s.ballots.Get(ctx, electionID)
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return json.Unmarshal[[]core.Ballot](value)
}

func (s *Store) HasVoted(ctx context.Context, electionID, voterID string) (bool, error) {
	list, err := s.ListByElection(ctx, electionID)
	if err != nil {
		return false, err
	}

	for _, ballot := range list {
		if ballot.VoterID == voterID {
			return true, nil
		}
	}

	return false, nil
}

// ClaimVoter atomically marks a voter as having voted in an election. The
// insert-if-absent create is what guarantees at most one ballot per voter,
// including under concurrent submissions.
func (s *Store) ClaimVoter(ctx context.Context, electionID, voterID, receiptID string) error {
	_, err := s.voters.Create(ctx, voterKey(electionID, voterID), []byte(receiptID))
	if err != nil {
		if errors.Is(err, core.ErrKeyExists) {
			return fmt.Errorf("%w: %w", core.ErrAlreadyVoted, err)
		}

		return err
	}

	return nil
}

// Append adds a ballot to its election's collection. Retries on revision
// conflicts until the append lands.
func (s *Store) Append(ctx context.Context, ballot core.Ballot) error {
	key := ballot.ElectionID

	for {
		entry, err := s.ballots.Entry(ctx, key)
		if err != nil { //nolint:nestif
			if errors.Is(err, core.ErrKeyNotFound) {
				value, err := json.Marshal([]core.Ballot{ballot})
				if err != nil {
					return err
				}

				_, err = s.ballots.Create(ctx, key, value)
				if err != nil {
					// Collection was created concurrently, try again.
					if errors.Is(err, core.ErrKeyExists) {
						continue
					}

					return err
				}

				return nil
			}

			return err
		}

		list, err := json.Unmarshal[[]core.Ballot](entry.Value)
		if err != nil {
			return err
		}

		value, err := json.Marshal(append(list, ballot))
		if err != nil {
			return err
		}

		_, err = s.ballots.Update(ctx, key, value, entry.Revision)
		if err == nil {
			return nil
		}

		if errors.Is(err, core.ErrKeyExists) || errors.Is(err, core.ErrKeyNotFound) {
			// Another ballot landed first, try again.
			continue
		}

		return err
	}
}

func (s *Store) HealthCheck() error {
	return nil
}

func (s *Store) Shutdown() error {
	return nil
}

func voterKey(electionID, voterID string) string {
	return electionID + "." + voterID
}
