package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skcvote/ballotd/internal/auth"
	"github.com/skcvote/ballotd/internal/candidates"
	"github.com/skcvote/ballotd/internal/core"
	"github.com/skcvote/ballotd/internal/elections"
)

func (s *Server) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) StatsHandler(c *gin.Context) {
	ctx := c.Request.Context()

	totalVoters, err := s.counter(ctx, core.StatsKeyTotalVoters)
	if err != nil {
		c.Error(err)

		return
	}

	activeNow, err := s.counter(ctx, core.StatsKeyActiveNow)
	if err != nil {
		c.Error(err)

		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		OK:          true,
		TotalVoters: totalVoters,
		ActiveNow:   activeNow,
	})
}

func (s *Server) CandidatesHandler(c *gin.Context) {
	ctx := c.Request.Context()
	electionID := electionIDParam(c)

	election, err := s.registry.Get(ctx, electionID)
	if err != nil {
		c.Error(err)

		return
	}

	roster, err := s.roster.ListByElection(ctx, electionID)
	if err != nil {
		c.Error(err)

		return
	}

	positions := []PositionPayload{}

	for _, group := range candidates.GroupByPosition(roster) {
		payload := PositionPayload{
			Position:   group.Position,
			Candidates: make([]CandidatePayload, 0, len(group.Candidates)),
		}

		for _, candidate := range group.Candidates {
			payload.Candidates = append(payload.Candidates, CandidatePayload{
				Name:  candidate.Name,
				Party: candidate.Party,
			})
		}

		positions = append(positions, payload)
	}

	c.JSON(http.StatusOK, CandidatesResponse{
		OK:         true,
		ElectionID: electionID,
		Status:     elections.Status(election, time.Now()),
		EndAt:      election.EndAt,
		Positions:  positions,
	})
}

func (s *Server) VoteStatusHandler(c *gin.Context) {
	ctx := c.Request.Context()
	electionID := electionIDParam(c)

	election, err := s.registry.Get(ctx, electionID)
	if err != nil {
		c.Error(err)

		return
	}

	session, ok := auth.SessionFromContext(c)
	authenticated := ok && session.UserID != ""

	hasVoted := false
	if authenticated {
		hasVoted, err = s.store.HasVoted(ctx, electionID, session.UserID)
		if err != nil {
			c.Error(err)

			return
		}
	}

	c.JSON(http.StatusOK, VoteStatusResponse{
		OK:            true,
		ElectionID:    electionID,
		Status:        elections.Status(election, time.Now()),
		EndAt:         election.EndAt,
		Authenticated: authenticated,
		HasVoted:      hasVoted,
	})
}

func (s *Server) SubmitHandler(c *gin.Context) {
	ctx := c.Request.Context()

	var request SubmitRequest

	if err := c.ShouldBindJSON(&request); err != nil || request.Votes == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_votes"})

		return
	}

	electionID := strings.TrimSpace(request.ElectionID)
	if electionID == "" {
		electionID = core.DefaultElectionID
	}

	session, _ := auth.SessionFromContext(c)

	receipt, err := s.submitter.Submit(ctx, electionID, session.UserID, request.Votes)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, SubmitResponse{
		OK:        true,
		ReceiptID: receipt.ReceiptID,
		Timestamp: receipt.SubmittedAt,
	})
}

func (s *Server) ResultsHandler(c *gin.Context) {
	ctx := c.Request.Context()
	electionID := electionIDParam(c)

	report, err := s.engine.Results(ctx, electionID)
	if err != nil {
		c.Error(err)

		return
	}

	c.JSON(http.StatusOK, ResultsResponse{
		OK:          true,
		ElectionID:  report.ElectionID,
		Status:      report.Status,
		EndAt:       report.EndAt,
		GeneratedAt: report.GeneratedAt,
		Results:     report.Positions,
	})
}

func (s *Server) ListElectionsHandler(c *gin.Context) {
	summaries, err := s.registry.List(c.Request.Context())
	if err != nil {
		c.Error(err)

		return
	}

	if summaries == nil {
		summaries = []core.ElectionSummary{}
	}

	c.JSON(http.StatusOK, ElectionsResponse{
		OK:        true,
		Elections: summaries,
	})
}

func (s *Server) UpsertElectionHandler(c *gin.Context) {
	var input elections.UpsertInput

	// A malformed body degrades to an empty input, which fails validation
	// below with missing_fields.
	_ = c.ShouldBindJSON(&input)

	summary, err := s.registry.Upsert(c.Request.Context(), input)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, ElectionResponse{
		OK:       true,
		Election: summary,
	})
}

func (s *Server) respondError(c *gin.Context, err error) {
	var invalidVote core.InvalidVoteError
	if errors.As(err, &invalidVote) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_vote", "position": invalidVote.Position})

		return
	}

	var votingClosed core.VotingClosedError
	if errors.As(err, &votingClosed) {
		c.JSON(http.StatusForbidden, gin.H{"error": "voting_closed", "endAt": votingClosed.EndAt})

		return
	}

	switch {
	case errors.Is(err, core.ErrAlreadyVoted):
		c.JSON(http.StatusConflict, gin.H{"error": "already_voted"})
	case errors.Is(err, core.ErrMissingVotes):
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_votes"})
	case errors.Is(err, core.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_fields"})
	case errors.Is(err, core.ErrMissingEndDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_end_date"})
	case errors.Is(err, core.ErrInvalidEndDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_end_date"})
	default:
		c.Error(err)
	}
}

func (s *Server) counter(ctx context.Context, key string) (int64, error) {
	value, err := s.stats.Get(ctx, key)
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return 0, nil
		}

		return 0, err
	}

	return strconv.ParseInt(string(value), 10, 64)
}

func electionIDParam(c *gin.Context) string {
	electionID := strings.TrimSpace(c.Query("electionId"))
	if electionID == "" {
		return core.DefaultElectionID
	}

	return electionID
}
