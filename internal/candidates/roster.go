package candidates

import (
	"context"
	"errors"

	"github.com/samber/do"
	"github.com/skcvote/ballotd/internal/core"
	"github.com/skcvote/ballotd/pkg/json"
)

// Roster reads the per-election candidate lists. The voting path never
// writes it; population happens through the seeding path.
type Roster struct {
	bucket core.KVBucket
}

func NewRoster(injector *do.Injector) (*Roster, error) {
	kv, err := do.Invoke[core.KV](injector)
	if err != nil {
		return nil, err
	}

	bucket, err := kv.CreateBucket(context.Background(), core.BucketCandidates)
	if err != nil {
		return nil, err
	}

	return &Roster{bucket: bucket}, nil
}

// ListByElection returns candidates in insertion order. Unknown elections
// yield an empty roster.
func (r *Roster) ListByElection(ctx context.Context, electionID string) ([]core.Candidate, error) {
	value, err := r.bucket.Get(ctx, electionID)
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return json.Unmarshal[[]core.Candidate](value)
}

// Put replaces an election's roster. This is the seeding/admin path only.
func (r *Roster) Put(ctx context.Context, electionID string, candidates []core.Candidate) error {
	value, err := json.Marshal(candidates)
	if err != nil {
		return err
	}

	return r.bucket.Put(ctx, electionID, value)
}

func (r *Roster) HealthCheck() error {
	return nil
}

func (r *Roster) Shutdown() error {
	return nil
}

type PositionGroup struct {
	Position   string
	Candidates []core.Candidate
}

// GroupByPosition groups candidates into the ballot view, preserving the
// order positions and candidates first appear in the roster. Entries with
// an empty position or name are skipped.
func GroupByPosition(candidates []core.Candidate) []PositionGroup {
	var groups []PositionGroup

	index := map[string]int{}

	for _, candidate := range candidates {
		if candidate.Position == "" || candidate.Name == "" {
			continue
		}

		i, ok := index[candidate.Position]
		if !ok {
			i = len(groups)
			index[candidate.Position] = i
			groups = append(groups, PositionGroup{Position: candidate.Position})
		}

		groups[i].Candidates = append(groups[i].Candidates, candidate)
	}

	return groups
}

// AllowList builds the position -> candidate-name set used to validate
// ballots.
func AllowList(candidates []core.Candidate) map[string]map[string]struct{} {
	allowed := map[string]map[string]struct{}{}

	for _, candidate := range candidates {
		if candidate.Position == "" || candidate.Name == "" {
			continue
		}

		names, ok := allowed[candidate.Position]
		if !ok {
			names = map[string]struct{}{}
			allowed[candidate.Position] = names
		}

		names[candidate.Name] = struct{}{}
	}

	return allowed
}
