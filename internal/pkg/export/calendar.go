package export

import (
	"time"

	ics "github.com/arran4/golang-ical"
)

const productID = "-//MoL Coffee//Schedule//EN"

// CalendarEvent is one shift rendered as a VEVENT.
type CalendarEvent struct {
	UID         string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	UpdatedAt   time.Time
}

// Calendar renders events as an iCalendar feed. Times are written in UTC.
func Calendar(name string, events []CalendarEvent) []byte {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(name)

	for _, e := range events {
		ev := cal.AddEvent(e.UID)
		ev.SetDtStampTime(e.UpdatedAt.UTC())
		ev.SetModifiedAt(e.UpdatedAt.UTC())
		ev.SetStartAt(e.Start.UTC())
		ev.SetEndAt(e.End.UTC())
		ev.SetSummary(e.Summary)
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}
	}

	return []byte(cal.Serialize())
}
