package core

import (
	"time"
)

const (
	BucketElections  = "elections"
	BucketCandidates = "candidates"
	BucketBallots    = "ballots"
	BucketVoters     = "voters"
	BucketStats      = "stats"

	StatsKeyTotalVoters = "totalVoters"
	StatsKeyActiveNow   = "activeNow"

	// DefaultElectionID is used when a request does not name an election.
	DefaultElectionID = "skc"

	MaxElectionIDLength = 48

	MaxRequestBodyBytes = 1 << 20

	SessionCookieName = "evoting.sid"
	SessionTTL        = 7 * 24 * time.Hour
)
