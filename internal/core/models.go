package core

import (
	"time"
)

type ElectionStatus string

const (
	StatusOpen   ElectionStatus = "open"
	StatusClosed ElectionStatus = "closed"
)

// Election is one contest instance. A nil EndAt means the election never
// closes; Positions is the accumulated set of allowed position names.
type Election struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	StartAt   *time.Time `json:"startAt"`
	EndAt     *time.Time `json:"endAt"`
	Positions []string   `json:"positions"`
}

// ElectionSummary is an election with its derived status and counts, as
// returned by the admin listing.
type ElectionSummary struct {
	Election

	Status         ElectionStatus `json:"status"`
	TotalBallots   int            `json:"totalBallots"`
	CandidateCount int            `json:"candidateCount"`
}

type Candidate struct {
	ID         string `json:"id"`
	ElectionID string `json:"electionId"`
	Position   string `json:"position"`
	Name       string `json:"name"`
	Party      string `json:"party"`
}

// Ballot is immutable once written. Selections maps position name to
// candidate name; the name string is the canonical vote value.
type Ballot struct {
	ID          string            `json:"id"`
	ElectionID  string            `json:"electionId"`
	VoterID     string            `json:"voterId"`
	ReceiptID   string            `json:"receiptId"`
	SubmittedAt time.Time         `json:"submittedAt"`
	Selections  map[string]string `json:"selections"`
}

// Receipt is the user-facing confirmation returned after a successful
// submission. It is informational only and cannot be redeemed.
type Receipt struct {
	ReceiptID   string    `json:"receiptID"`
	SubmittedAt time.Time `json:"timestamp"`
}

type CandidateResult struct {
	Name       string `json:"name"`
	Party      string `json:"party"`
	Votes      int    `json:"votes"`
	Percentage int    `json:"percentage"`
}

type PositionResult struct {
	Position   string            `json:"position"`
	Candidates []CandidateResult `json:"candidates"`
}

// Report is recomputed from candidates and ballots on every request.
// Positions is empty while the election is still open.
type Report struct {
	ElectionID  string           `json:"electionId"`
	Status      ElectionStatus   `json:"status"`
	EndAt       *time.Time       `json:"endAt"`
	GeneratedAt time.Time        `json:"generatedAt"`
	Positions   []PositionResult `json:"positions"`
}
