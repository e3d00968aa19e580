// Package calibrations implements calibration run intake and analysis.
// A run carries the raw payload a scanner produced for the calibration
// sheet; the package segments it, evaluates case-conversion heuristics,
// records the outcome, and optionally archives the raw capture.
package calibrations

import (
	"time"

	"github.com/google/uuid"

	"scancal/pkg/caseconv"
	"scancal/workflow"
)

// Calibration represents a recorded calibration run and its analysis outcome.
type Calibration struct {
	ID                uuid.UUID        `json:"id"`
	DeviceID          uuid.UUID        `json:"device_id"`
	Script            caseconv.Script  `json:"script"`
	Payload           string           `json:"payload"`
	SegmentLength     int              `json:"segment_length"`
	UpperConversion   bool             `json:"upper_conversion"`
	LowerConversion   bool             `json:"lower_conversion"`
	CapsLockIndicated bool             `json:"caps_lock_indicated"`
	ReportedCapsLock  *bool            `json:"reported_caps_lock"`
	Outcome           workflow.Outcome `json:"outcome"`
	CaptureKey        *string          `json:"capture_key,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

// CreateCommand carries the data needed to record a calibration run.
// Payload is the raw scan of the calibration sheet. Script selects the
// per-script case ranges; empty defaults to Latin. ReportedCapsLock is
// the host's own caps-lock report, if one was available. Capture holds
// an optional raw capture archive to store alongside the run.
type CreateCommand struct {
	DeviceID         uuid.UUID       `json:"device_id"`
	Payload          string          `json:"payload"`
	Script           caseconv.Script `json:"script"`
	ReportedCapsLock *bool           `json:"reported_caps_lock"`
	Capture          []byte          `json:"capture,omitempty"`
}

// BatchResult reports the outcome of a single run within a batch submission.
// On success, Calibration is populated and Error is empty.
type BatchResult struct {
	Calibration *Calibration `json:"calibration,omitempty"`
	Error       string       `json:"error,omitempty"`
}
