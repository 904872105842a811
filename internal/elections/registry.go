package elections

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/skcvote/ballotd/internal/core"
	"github.com/skcvote/ballotd/pkg/json"
)

// UpsertInput accepts both the canonical field names and the legacy admin
// console aliases (orgClub, eventStart, eventEnd).
type UpsertInput struct {
	ElectionID       string `json:"electionId"`
	Name             string `json:"name"`
	OrgClub          string `json:"orgClub"`
	StartAt          string `json:"startAt"`
	EventStart       string `json:"eventStart"`
	EndAt            string `json:"endAt"`
	EventEnd         string `json:"eventEnd"`
	PositionIncluded string `json:"positionIncluded"`
}

// Registry owns the election configuration collection. Everything else
// reads elections through it.
type Registry struct {
	elections  core.KVBucket
	candidates core.KVBucket
	ballots    core.KVBucket

	logger logrus.FieldLogger
}

func NewRegistry(injector *do.Injector) (*Registry, error) {
	kv, err := do.Invoke[core.KV](injector)
	if err != nil {
		return nil, err
	}

	logger, err := do.Invoke[logrus.FieldLogger](injector)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	elections, err := kv.CreateBucket(ctx, core.BucketElections)
	if err != nil {
		return nil, err
	}

	candidates, err := kv.CreateBucket(ctx, core.BucketCandidates)
	if err != nil {
		return nil, err
	}

	ballots, err := kv.CreateBucket(ctx, core.BucketBallots)
	if err != nil {
		return nil, err
	}

	return &Registry{
		elections:  elections,
		candidates: candidates,
		ballots:    ballots,
		logger:     logger.WithField("component", "elections.Registry"),
	}, nil
}

// Upsert creates or updates an election. Repeated edits merge: positions
// accumulate as a union, and omitted fields keep their previous values.
func (r *Registry) Upsert(ctx context.Context, input UpsertInput) (core.ElectionSummary, error) {
	name := firstNonEmpty(input.Name, input.OrgClub)
	endRaw := firstNonEmpty(input.EndAt, input.EventEnd)
	startRaw := firstNonEmpty(input.StartAt, input.EventStart)

	id := strings.TrimSpace(input.ElectionID)
	if id == "" {
		id = SlugifyElectionID(name)
	}

	if id == "" {
		return core.ElectionSummary{}, core.ErrMissingFields
	}

	if endRaw == "" {
		return core.ElectionSummary{}, core.ErrMissingEndDate
	}

	endAt, err := ParseTimestamp(endRaw, true)
	if err != nil {
		return core.ElectionSummary{}, fmt.Errorf("%w: %w", core.ErrInvalidEndDate, err)
	}

	existing, err := r.Get(ctx, id)
	if err != nil {
		return core.ElectionSummary{}, err
	}

	election := core.Election{
		ID:        id,
		Name:      firstNonEmpty(name, existing.Name, id),
		StartAt:   existing.StartAt,
		EndAt:     &endAt,
		Positions: existing.Positions,
	}

	// A start date that does not parse is dropped, not rejected.
	if startRaw != "" {
		if startAt, err := ParseTimestamp(startRaw, false); err == nil {
			election.StartAt = &startAt
		}
	}

	if position := strings.TrimSpace(input.PositionIncluded); position != "" {
		election.Positions = mergePosition(election.Positions, position)
	}

	value, err := json.Marshal(election)
	if err != nil {
		return core.ElectionSummary{}, err
	}

	if err := r.elections.Put(ctx, id, value); err != nil {
		return core.ElectionSummary{}, err
	}

	if err := r.ensureCollections(ctx, id); err != nil {
		return core.ElectionSummary{}, err
	}

	r.logger.WithField("electionId", id).Info("Election upserted")

	return core.ElectionSummary{
		Election: election,
		Status:   Status(election, time.Now()),
	}, nil
}

// Get never fails on an unknown id: it degrades to an open election stub so
// downstream checks default to "open".
func (r *Registry) Get(ctx context.Context, id string) (core.Election, error) {
	value, err := r.elections.Get(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return core.Election{ID: id}, nil
		}

		return core.Election{}, err
	}

	return json.Unmarshal[core.Election](value)
}

// List returns every election with its derived status and collection
// counts, sorted by id.
func (r *Registry) List(ctx context.Context) ([]core.ElectionSummary, error) {
	entries, err := r.elections.All(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

	now := time.Now()

	var summaries []core.ElectionSummary //nolint:prealloc

	for _, entry := range entries {
		election, err := json.Unmarshal[core.Election](entry.Value)
		if err != nil {
			return nil, err
		}

		totalBallots, err := r.collectionLen(ctx, r.ballots, election.ID)
		if err != nil {
			return nil, err
		}

		candidateCount, err := r.collectionLen(ctx, r.candidates, election.ID)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, core.ElectionSummary{
			Election:       election,
			Status:         Status(election, now),
			TotalBallots:   totalBallots,
			CandidateCount: candidateCount,
		})
	}

	return summaries, nil
}

// ensureCollections makes sure empty candidate and ballot collections exist
// for a newly created election id.
func (r *Registry) ensureCollections(ctx context.Context, id string) error {
	for _, bucket := range []core.KVBucket{r.candidates, r.ballots} {
		_, err := bucket.Create(ctx, id, []byte("[]"))
		if err != nil && !errors.Is(err, core.ErrKeyExists) {
			return err
		}
	}

	return nil
}

func (r *Registry) collectionLen(ctx context.Context, bucket core.KVBucket, id string) (int, error) {
	value, err := bucket.Get(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return 0, nil
		}

		return 0, err
	}

	items, err := json.Unmarshal[[]json.RawMessage](value)
	if err != nil {
		return 0, err
	}

	return len(items), nil
}

func (r *Registry) HealthCheck() error {
	return nil
}

func (r *Registry) Shutdown() error {
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}

	return ""
}

func mergePosition(positions []string, position string) []string {
	for _, existing := range positions {
		if existing == position {
			return positions
		}
	}

	return append(positions, position)
}
