package calibrations

import (
	"net/url"

	"github.com/google/uuid"

	"scancal/pkg/query"
	"scancal/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "calibrations", "c").
	Project("id", "ID").
	Project("device_id", "DeviceID").
	Project("script", "Script").
	Project("payload", "Payload").
	Project("segment_length", "SegmentLength").
	Project("upper_conversion", "UpperConversion").
	Project("lower_conversion", "LowerConversion").
	Project("caps_lock_indicated", "CapsLockIndicated").
	Project("reported_caps_lock", "ReportedCapsLock").
	Project("outcome", "Outcome").
	Project("capture_key", "CaptureKey").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for calibration queries.
// Nil fields are ignored; all fields use exact matching.
type Filters struct {
	DeviceID *uuid.UUID `json:"device_id,omitempty"`
	Script   *string    `json:"script,omitempty"`
	Outcome  *string    `json:"outcome,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("DeviceID", f.DeviceID).
		WhereEquals("Script", f.Script).
		WhereEquals("Outcome", f.Outcome)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if d := values.Get("device_id"); d != "" {
		if id, err := uuid.Parse(d); err == nil {
			f.DeviceID = &id
		}
	}
	if s := values.Get("script"); s != "" {
		f.Script = &s
	}
	if o := values.Get("outcome"); o != "" {
		f.Outcome = &o
	}

	return f
}

func scanCalibration(s repository.Scanner) (Calibration, error) {
	var c Calibration
	err := s.Scan(
		&c.ID,
		&c.DeviceID,
		&c.Script,
		&c.Payload,
		&c.SegmentLength,
		&c.UpperConversion,
		&c.LowerConversion,
		&c.CapsLockIndicated,
		&c.ReportedCapsLock,
		&c.Outcome,
		&c.CaptureKey,
		&c.CreatedAt,
	)
	return c, err
}
