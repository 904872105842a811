package api

import (
	"time"

	"github.com/skcvote/ballotd/internal/core"
)

type SubmitRequest struct {
	ElectionID string            `json:"electionId"`
	Votes      map[string]string `json:"votes"`
}

type SubmitResponse struct {
	OK        bool      `json:"ok"`
	ReceiptID string    `json:"receiptID"`
	Timestamp time.Time `json:"timestamp"`
}

type CandidatePayload struct {
	Name  string `json:"name"`
	Party string `json:"party"`
}

type PositionPayload struct {
	Position   string             `json:"position"`
	Candidates []CandidatePayload `json:"candidates"`
}

type CandidatesResponse struct {
	OK         bool                `json:"ok"`
	ElectionID string              `json:"electionId"`
	Status     core.ElectionStatus `json:"status"`
	EndAt      *time.Time          `json:"endAt"`
	Positions  []PositionPayload   `json:"positions"`
}

type VoteStatusResponse struct {
	OK            bool                `json:"ok"`
	ElectionID    string              `json:"electionId"`
	Status        core.ElectionStatus `json:"status"`
	EndAt         *time.Time          `json:"endAt"`
	Authenticated bool                `json:"authenticated"`
	HasVoted      bool                `json:"hasVoted"`
}

type ResultsResponse struct {
	OK          bool                  `json:"ok"`
	ElectionID  string                `json:"electionId"`
	Status      core.ElectionStatus   `json:"status"`
	EndAt       *time.Time            `json:"endAt"`
	GeneratedAt time.Time             `json:"generatedAt"`
	Results     []core.PositionResult `json:"results"`
}

type ElectionsResponse struct {
	OK        bool                   `json:"ok"`
	Elections []core.ElectionSummary `json:"elections"`
}

type ElectionResponse struct {
	OK       bool                 `json:"ok"`
	Election core.ElectionSummary `json:"election"`
}

type StatsResponse struct {
	OK          bool  `json:"ok"`
	TotalVoters int64 `json:"totalVoters"`
	ActiveNow   int64 `json:"activeNow"`
}
