package core

import (
	"errors"
	"fmt"
	"time"
)

var (
	// KV errors.
	ErrKeyNotFound    = errors.New("key not found")
	ErrBucketNotFound = errors.New("bucket not found")
	ErrKeyExists      = errors.New("key already exists")

	// Election registry errors.
	ErrMissingFields  = errors.New("missing fields")
	ErrMissingEndDate = errors.New("missing end date")
	ErrInvalidEndDate = errors.New("invalid end date")

	// Ballot submission errors.
	ErrMissingVotes = errors.New("missing votes")
	ErrInvalidVote  = errors.New("invalid vote")
	ErrVotingClosed = errors.New("voting closed")
	ErrAlreadyVoted = errors.New("already voted")

	// Auth errors.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// InvalidVoteError reports the first selection pair that failed validation.
type InvalidVoteError struct {
	Position string
}

func (e InvalidVoteError) Error() string {
	return fmt.Sprintf("invalid vote for position %q", e.Position)
}

func (e InvalidVoteError) Unwrap() error {
	return ErrInvalidVote
}

// VotingClosedError carries the end time that closed the election.
type VotingClosedError struct {
	EndAt *time.Time
}

func (e VotingClosedError) Error() string {
	return "voting closed"
}

func (e VotingClosedError) Unwrap() error {
	return ErrVotingClosed
}
