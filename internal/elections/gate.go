package elections

import (
	"time"

	"github.com/skcvote/ballotd/internal/core"
)

// Status is the voting gate: an election is closed iff its end time is set
// and now is at or after it. Elections without an end time never close, and
// a future start time does not keep an election from accepting ballots.
func Status(election core.Election, now time.Time) core.ElectionStatus {
	if election.EndAt != nil && !now.Before(*election.EndAt) {
		return core.StatusClosed
	}

	return core.StatusOpen
}
