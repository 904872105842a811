package tally

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/samber/do"
	"github.com/skcvote/ballotd/internal/ballots"
	"github.com/skcvote/ballotd/internal/candidates"
	"github.com/skcvote/ballotd/internal/core"
	"github.com/skcvote/ballotd/internal/elections"
)

// Engine aggregates ballots into per-position vote counts and percentages.
// Reports are recomputed fresh on every call.
type Engine struct {
	registry *elections.Registry
	roster   *candidates.Roster
	store    *ballots.Store
}

func NewEngine(injector *do.Injector) (*Engine, error) {
	registry, err := do.Invoke[*elections.Registry](injector)
	if err != nil {
		return nil, err
	}

	roster, err := do.Invoke[*candidates.Roster](injector)
	if err != nil {
		return nil, err
	}

	store, err := do.Invoke[*ballots.Store](injector)
	if err != nil {
		return nil, err
	}

	return &Engine{
		registry: registry,
		roster:   roster,
		store:    store,
	}, nil
}

// Results withholds positions until the election closes. Once closed, every
// roster candidate appears in the output, zero votes included; selections
// that no longer match the roster are silently ignored.
func (e *Engine) Results(ctx context.Context, electionID string) (core.Report, error) {
	election, err := e.registry.Get(ctx, electionID)
	if err != nil {
		return core.Report{}, err
	}

	now := time.Now().UTC()

	report := core.Report{
		ElectionID:  electionID,
		Status:      elections.Status(election, now),
		EndAt:       election.EndAt,
		GeneratedAt: now,
		Positions:   []core.PositionResult{},
	}

	if report.Status != core.StatusClosed {
		return report, nil
	}

	roster, err := e.roster.ListByElection(ctx, electionID)
	if err != nil {
		return core.Report{}, err
	}

	list, err := e.store.ListByElection(ctx, electionID)
	if err != nil {
		return core.Report{}, err
	}

	groups := candidates.GroupByPosition(roster)

	counts := make(map[string]map[string]int, len(groups))
	for _, group := range groups {
		counts[group.Position] = make(map[string]int, len(group.Candidates))
		for _, candidate := range group.Candidates {
			counts[group.Position][candidate.Name] = 0
		}
	}

	for _, ballot := range list {
		for position, name := range ballot.Selections {
			positionCounts, ok := counts[position]
			if !ok {
				continue
			}

			if _, ok := positionCounts[name]; !ok {
				continue
			}

			positionCounts[name]++
		}
	}

	for _, group := range groups {
		positionCounts := counts[group.Position]

		total := 0
		for _, votes := range positionCounts {
			total += votes
		}

		results := make([]core.CandidateResult, 0, len(group.Candidates))

		for _, candidate := range group.Candidates {
			votes := positionCounts[candidate.Name]

			percentage := 0
			if total > 0 {
				percentage = int(math.Round(float64(votes) / float64(total) * 100))
			}

			results = append(results, core.CandidateResult{
				Name:       candidate.Name,
				Party:      candidate.Party,
				Votes:      votes,
				Percentage: percentage,
			})
		}

		// Ties keep the roster's relative order.
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Votes > results[j].Votes
		})

		report.Positions = append(report.Positions, core.PositionResult{
			Position:   group.Position,
			Candidates: results,
		})
	}

	return report, nil
}

func (e *Engine) HealthCheck() error {
	return nil
}

func (e *Engine) Shutdown() error {
	return nil
}
