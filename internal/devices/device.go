// Package devices implements the scanner device registry.
// It provides types, data access, and HTTP endpoints for registering
// and managing the barcode scanners that submit calibration runs.
package devices

import (
	"time"

	"github.com/google/uuid"
)

// Device represents a registered barcode scanner.
type Device struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Vendor         string    `json:"vendor"`
	Model          string    `json:"model"`
	KeyboardLayout string    `json:"keyboard_layout"`
	RegisteredAt   time.Time `json:"registered_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to register a new device.
// KeyboardLayout identifies the host layout the scanner emulates
// (e.g. "en-US", "de-DE"); it defaults to "en-US" when empty.
type CreateCommand struct {
	Name           string `json:"name"`
	Vendor         string `json:"vendor"`
	Model          string `json:"model"`
	KeyboardLayout string `json:"keyboard_layout"`
}
