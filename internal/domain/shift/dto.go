package shift

import (
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/validator"
)

// MaxBulkDays bounds a bulk creation range.
const MaxBulkDays = 62

type ShiftResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	ActivityID   string    `json:"activity_id"`
	ActivityName string    `json:"activity_name"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	Date         string    `json:"date"`
	Month        string    `json:"month"`
	Template     string    `json:"template"`
	IsManual     bool      `json:"is_manual"`
	Note         *string   `json:"note"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewShiftResponse(r Record, loc *time.Location) ShiftResponse {
	return ShiftResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		ActivityID:   r.ActivityID,
		ActivityName: r.ActivityName,
		StartAt:      r.StartAt,
		EndAt:        r.EndAt,
		Date:         localtime.LocalDate(r.StartAt, loc),
		Month:        r.Month(loc).String(),
		Template:     string(r.Template),
		IsManual:     r.IsManual,
		Note:         r.Note,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type ListShiftsQuery struct {
	Month      string
	EmployeeID *string
}

func (q *ListShiftsQuery) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(q.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month is required"})
	} else if _, ok := validator.IsValidYearMonth(q.Month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be YYYY-MM"})
	}
	if q.EmployeeID != nil && validator.IsEmpty(*q.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id cannot be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ShiftInput is the body of create and update. Either start_at/end_at (RFC3339)
// or a preset template plus a local date must be given.
type ShiftInput struct {
	EmployeeID string  `json:"employee_id"`
	ActivityID string  `json:"activity_id"`
	Template   string  `json:"template"`
	Date       string  `json:"date,omitempty"`
	StartAt    string  `json:"start_at,omitempty"`
	EndAt      string  `json:"end_at,omitempty"`
	Note       *string `json:"note,omitempty"`
}

func (in *ShiftInput) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(in.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if validator.IsEmpty(in.ActivityID) {
		errs = append(errs, validator.ValidationError{Field: "activity_id", Message: "activity_id is required"})
	}
	if in.Template == "" {
		in.Template = string(TemplateCustom)
	}
	tmpl := Template(in.Template)
	if !tmpl.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "template", Message: "template must be morning, afternoon or custom"})
	}

	explicit := in.StartAt != "" || in.EndAt != ""
	if explicit {
		start, okStart := validator.IsValidDateTime(in.StartAt)
		end, okEnd := validator.IsValidDateTime(in.EndAt)
		if !okStart {
			errs = append(errs, validator.ValidationError{Field: "start_at", Message: "start_at must be RFC3339"})
		}
		if !okEnd {
			errs = append(errs, validator.ValidationError{Field: "end_at", Message: "end_at must be RFC3339"})
		}
		if okStart && okEnd && !end.After(start) {
			errs = append(errs, validator.ValidationError{Field: "end_at", Message: ErrInvalidInterval.Error()})
		}
	} else {
		if _, _, ok := tmpl.Preset(); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_at", Message: "start_at and end_at are required for custom shifts"})
		}
		if _, ok := validator.IsValidDate(in.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
		}
	}
	if in.Note != nil && len(*in.Note) > 500 {
		errs = append(errs, validator.ValidationError{Field: "note", Message: "note must be at most 500 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToShift resolves the input into a shift in loc; call after Validate.
func (in *ShiftInput) ToShift(loc *time.Location) Shift {
	tmpl := Template(in.Template)
	var start, end time.Time

	if in.StartAt != "" {
		start, _ = validator.IsValidDateTime(in.StartAt)
		end, _ = validator.IsValidDateTime(in.EndAt)
	} else {
		day, _ := time.ParseInLocation("2006-01-02", in.Date, loc)
		ps, pe, _ := tmpl.Preset()
		start, end = day.Add(ps), day.Add(pe)
	}
	start, end = start.UTC(), end.UTC()

	return Shift{
		EmployeeID: in.EmployeeID,
		ActivityID: in.ActivityID,
		StartAt:    start,
		EndAt:      end,
		Template:   tmpl,
		IsManual:   IsManualFor(tmpl, start, end, loc),
		Note:       in.Note,
	}
}

type CreateShiftRequest struct {
	ShiftInput
}

type UpdateShiftRequest struct {
	ID string `json:"-"`
	ShiftInput
}

func (r *UpdateShiftRequest) Validate() error {
	if validator.IsEmpty(r.ID) {
		return validator.ValidationErrors{{Field: "id", Message: "id is required"}}
	}
	return r.ShiftInput.Validate()
}

// BulkCreateShiftRequest schedules one preset shift per selected day in [from, to].
type BulkCreateShiftRequest struct {
	EmployeeID string         `json:"employee_id"`
	ActivityID string         `json:"activity_id"`
	Template   string         `json:"template"`
	From       string         `json:"from"`
	To         string         `json:"to"`
	Weekdays   []time.Weekday `json:"weekdays,omitempty"`
	Note       *string        `json:"note,omitempty"`
}

func (r *BulkCreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if validator.IsEmpty(r.ActivityID) {
		errs = append(errs, validator.ValidationError{Field: "activity_id", Message: "activity_id is required"})
	}
	if _, _, ok := Template(r.Template).Preset(); !ok {
		errs = append(errs, validator.ValidationError{Field: "template", Message: "template must be morning or afternoon"})
	}
	from, okFrom := validator.IsValidDate(r.From)
	to, okTo := validator.IsValidDate(r.To)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "from must be YYYY-MM-DD"})
	}
	if !okTo {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to must be YYYY-MM-DD"})
	}
	if okFrom && okTo {
		if to.Before(from) {
			errs = append(errs, validator.ValidationError{Field: "to", Message: "to must not be before from"})
		} else if int(to.Sub(from).Hours()/24)+1 > MaxBulkDays {
			errs = append(errs, validator.ValidationError{Field: "to", Message: "range must be at most 62 days"})
		}
	}
	for _, wd := range r.Weekdays {
		if wd < time.Sunday || wd > time.Saturday {
			errs = append(errs, validator.ValidationError{Field: "weekdays", Message: "weekdays must be 0 (Sunday) to 6 (Saturday)"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Expand returns one shift per selected day; call after Validate.
func (r *BulkCreateShiftRequest) Expand(loc *time.Location) []Shift {
	from, _ := time.ParseInLocation("2006-01-02", r.From, loc)
	to, _ := time.ParseInLocation("2006-01-02", r.To, loc)
	tmpl := Template(r.Template)
	ps, pe, _ := tmpl.Preset()

	want := make(map[time.Weekday]bool, len(r.Weekdays))
	for _, wd := range r.Weekdays {
		want[wd] = true
	}

	var shifts []Shift
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if len(want) > 0 && !want[day.Weekday()] {
			continue
		}
		shifts = append(shifts, Shift{
			EmployeeID: r.EmployeeID,
			ActivityID: r.ActivityID,
			StartAt:    day.Add(ps).UTC(),
			EndAt:      day.Add(pe).UTC(),
			Template:   tmpl,
			IsManual:   false,
			Note:       r.Note,
		})
	}
	return shifts
}
