package ballots

import (
	"fmt"
	"math/rand/v2"
)

const (
	receiptMin  = 10000000
	receiptSpan = 90000000
)

// NewReceiptID returns a confirmation code of the form "#" followed by 8
// decimal digits. Codes are drawn uniformly and carry no uniqueness
// guarantee; the ballot id is the store key.
func NewReceiptID() string {
	return fmt.Sprintf("#%d", receiptMin+rand.IntN(receiptSpan))
}
