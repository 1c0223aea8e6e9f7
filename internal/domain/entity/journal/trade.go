package journal

import (
	"time"
)

// Trade is a recorded position owned by a project. A trade always has at
// least one leg at creation time; notes and the close date are optional and
// stay nil until set.
type Trade struct {
	ID          int64
	ProjectID   int64
	Symbol      string
	OpenDate    time.Time
	CloseDate   *time.Time
	OpeningNote *string
	ClosingNote *string
}
