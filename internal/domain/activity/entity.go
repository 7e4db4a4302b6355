package activity

import "time"

// Activity is a category of billable work, e.g. barista or cashier.
type Activity struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
