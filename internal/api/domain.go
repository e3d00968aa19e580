package api

import (
	"scancal/internal/calibrations"
	"scancal/internal/devices"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Devices      devices.System
	Calibrations calibrations.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	devicesSystem := devices.New(
		runtime.Database.Pool(),
		runtime.Logger,
		runtime.Pagination,
	)

	calibrationsSystem := calibrations.New(
		runtime.Database.Pool(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
		runtime.BatchWorkers,
	)

	return &Domain{
		Devices:      devicesSystem,
		Calibrations: calibrationsSystem,
	}
}
