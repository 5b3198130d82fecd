package cycle

import "time"

// Record is one finished cycle as kept in the journal. Corresponds to
// the 'capture_cycles' table.
type Record struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time
	Result     Result
	Detail     string // error text for failed cycles, empty on success
	CreatedAt  time.Time
}
