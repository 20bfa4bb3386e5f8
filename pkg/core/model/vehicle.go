// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"time"
)

// Vehicle models a vehicle (unidad) of the logistics fleet.
// DriverCURP holds the natural key of the assigned driver and is
// empty while the vehicle is unassigned. The application maintains
// the at-most-one-vehicle-per-driver rule; the schema itself only
// enforces that a non-empty DriverCURP references an existing driver.
type Vehicle struct {
	ID               int64
	Plate            string // unique
	RegistrationCard string // tarjeta de circulación, unique
	TypeID           int64
	BranchCode       string
	DriverCURP       string // empty when unassigned
	CargoVolume      float64
	Axles            int
	Tires            int
	Status           VehicleStatus
	RegisteredAt     time.Time
}

// AvailableVehicle is one row of the assignment dropdown: a vehicle
// of the requested branch which may be linked to the requesting
// driver (unassigned, or already theirs).
type AvailableVehicle struct {
	ID       int64
	Plate    string
	TypeName string
}

// DriverRef is the subset of driver fields which vehicle listings
// attach to their rows.
type DriverRef struct {
	ID        int64
	FullName  string
	CURP      string
	Phone     string
	Email     string
	Available bool
}

// VehicleSummary is one row of the paginated vehicles listing.
type VehicleSummary struct {
	ID         int64
	Plate      string
	TypeName   string
	CapacityKg float64
	Status     VehicleStatus
	DriverName string // empty when unassigned
	Branch     BranchRef
}

// VehicleWithDriver is one row of the vehicles-with-drivers catalog.
// Driver is nil while the vehicle is unassigned.
type VehicleWithDriver struct {
	ID       int64
	Plate    string
	TypeName string
	Status   VehicleStatus
	Driver   *DriverRef
	Branch   BranchRef
}

// VehicleStatus specifies the operational status enum of a vehicle.
// Although this enum is numeric, it is (de)serialized as a string for
// readability in the adapter layer and in the database.
type VehicleStatus int

// Valid values for the VehicleStatus enum.
const (
	VehicleStatusInvalid VehicleStatus = iota // zero value is invalid

	VehicleStatusAvailable   // disponible
	VehicleStatusEnRoute     // en ruta
	VehicleStatusMaintenance // mantenimiento
)

// ErrUnknownVehicleStatus indicates that a given string may not be
// parsed as a valid/known vehicle status. The invalid string itself is
// not encoded in the error because the caller of Parse already knows
// it and is responsible for wrapping this error with that context.
var ErrUnknownVehicleStatus = errors.New("unknown vehicle status")

// VehicleStatusError indicates an invalid vehicle status value,
// containing the invalid status as an integer.
type VehicleStatusError int

// Error implements the error interface, returning a string
// representation of the VehicleStatusError.
func (e VehicleStatusError) Error() string {
	return fmt.Sprintf("invalid vehicle status: %d", int(e))
}

// Validate returns nil if the VehicleStatus value is valid. For
// invalid values, an instance of VehicleStatusError will be returned.
func (s VehicleStatus) Validate() error {
	switch s {
	case VehicleStatusAvailable, VehicleStatusEnRoute,
		VehicleStatusMaintenance:
		return nil
	default:
		return VehicleStatusError(s)
	}
}

// String converts the VehicleStatus enum to its string form, as it is
// stored in the database and transmitted to web clients. An invalid
// status causes a panic.
func (s VehicleStatus) String() string {
	switch s {
	case VehicleStatusAvailable:
		return "disponible"
	case VehicleStatusEnRoute:
		return "en_ruta"
	case VehicleStatusMaintenance:
		return "mantenimiento"
	default:
		panic(VehicleStatusError(s))
	}
}

// ParseVehicleStatus parses the given string and returns a
// VehicleStatus. For invalid strings, VehicleStatusInvalid and
// ErrUnknownVehicleStatus will be returned.
func ParseVehicleStatus(s string) (VehicleStatus, error) {
	switch s {
	case "disponible":
		return VehicleStatusAvailable, nil
	case "en_ruta":
		return VehicleStatusEnRoute, nil
	case "mantenimiento":
		return VehicleStatusMaintenance, nil
	default:
		return VehicleStatusInvalid, ErrUnknownVehicleStatus
	}
}
