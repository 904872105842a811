package api

import (
	"context"
	"fmt"

	"github.com/samber/do"
	"github.com/skcvote/ballotd/internal/auth"
	"github.com/skcvote/ballotd/internal/ballots"
	"github.com/skcvote/ballotd/internal/candidates"
	"github.com/skcvote/ballotd/internal/core"
	"github.com/skcvote/ballotd/internal/elections"
	"github.com/skcvote/ballotd/internal/tally"
	"github.com/skcvote/ballotd/pkg/httpserver"
)

type Server struct {
	*httpserver.Server

	sessions  *auth.Sessions
	registry  *elections.Registry
	roster    *candidates.Roster
	store     *ballots.Store
	submitter *ballots.Submitter
	engine    *tally.Engine
	stats     core.KVBucket
}

// NewServer creates a new Server instance.
func NewServer(injector *do.Injector) (*Server, error) {
	config, err := do.Invoke[core.Config](injector)
	if err != nil {
		return nil, err
	}

	server, err := httpserver.NewServer(injector, "api.Server", config.HTTPPort())
	if err != nil {
		return nil, fmt.Errorf("failed to create a new http server: %w", err)
	}

	sessions, err := do.Invoke[*auth.Sessions](injector)
	if err != nil {
		return nil, err
	}

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

	submitter, err := do.Invoke[*ballots.Submitter](injector)
	if err != nil {
		return nil, err
	}

	engine, err := do.Invoke[*tally.Engine](injector)
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

	srv := &Server{
		Server:    server,
		sessions:  sessions,
		registry:  registry,
		roster:    roster,
		store:     store,
		submitter: submitter,
		engine:    engine,
		stats:     stats,
	}

	api := srv.Router.Group("/api")

	api.GET("/health", srv.HealthHandler)
	api.GET("/stats", srv.StatsHandler)
	api.GET("/candidates", srv.CandidatesHandler)
	api.GET("/votes/status", sessions.OptionalSession(), srv.VoteStatusHandler)
	api.POST("/votes/submit", sessions.RequireVoter(), srv.SubmitHandler)
	api.GET("/results", srv.ResultsHandler)
	api.GET("/elections", sessions.RequireAdmin(), srv.ListElectionsHandler)
	api.POST("/elections", sessions.RequireAdmin(), srv.UpsertElectionHandler)

	return srv, nil
}
