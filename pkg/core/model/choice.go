// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"strconv"
)

// UnassignedSentinel is the reserved form value which the dashboard
// sends when the user explicitly picks "Sin asignar" in the vehicle
// dropdown. An empty string carries the same meaning.
const UnassignedSentinel = "unassigned"

// VehicleChoice is the typed form of the optional vehicle selection
// submitted with a driver create/update. It distinguishes three
// instructions which a loosely-typed form field would conflate:
//
//  1. the field was omitted entirely: keep existing links untouched;
//  2. the field held the unassigned sentinel or an empty string:
//     explicitly clear the driver's links;
//  3. the field held a vehicle ID: link that vehicle to the driver.
type VehicleChoice struct {
	kind vehicleChoiceKind
	id   int64
}

type vehicleChoiceKind int

const (
	vehicleChoiceKeep vehicleChoiceKind = iota
	vehicleChoiceClear
	vehicleChoiceAssign
)

// KeepVehicle returns the no-instruction choice (field omitted).
// It is also the zero value of VehicleChoice.
func KeepVehicle() VehicleChoice {
	return VehicleChoice{kind: vehicleChoiceKeep}
}

// ClearVehicle returns the explicit-unassign choice.
func ClearVehicle() VehicleChoice {
	return VehicleChoice{kind: vehicleChoiceClear}
}

// AssignVehicle returns the choice which links the id vehicle.
func AssignVehicle(id int64) VehicleChoice {
	return VehicleChoice{kind: vehicleChoiceAssign, id: id}
}

// IsKeep reports whether the choice carries no instruction.
func (vc VehicleChoice) IsKeep() bool {
	return vc.kind == vehicleChoiceKeep
}

// IsClear reports whether the choice asks to unlink all vehicles.
func (vc VehicleChoice) IsClear() bool {
	return vc.kind == vehicleChoiceClear
}

// Assignment returns the requested vehicle ID and true if the choice
// asks to link a concrete vehicle, and zero and false otherwise.
func (vc VehicleChoice) Assignment() (int64, bool) {
	if vc.kind != vehicleChoiceAssign {
		return 0, false
	}
	return vc.id, true
}

// DriverChoice is the typed form of the optional driver selection
// submitted with a vehicle create/update, carrying the driver's CURP
// instead of a surrogate ID. Its three states mirror VehicleChoice:
// keep (field omitted), clear (sentinel/empty), assign (a CURP).
type DriverChoice struct {
	kind vehicleChoiceKind
	curp string
}

// KeepDriver returns the no-instruction choice (field omitted).
// It is also the zero value of DriverChoice.
func KeepDriver() DriverChoice {
	return DriverChoice{kind: vehicleChoiceKeep}
}

// ClearDriver returns the explicit-unassign choice.
func ClearDriver() DriverChoice {
	return DriverChoice{kind: vehicleChoiceClear}
}

// AssignDriver returns the choice which links the curp driver.
func AssignDriver(curp string) DriverChoice {
	return DriverChoice{kind: vehicleChoiceAssign, curp: curp}
}

// IsKeep reports whether the choice carries no instruction.
func (dc DriverChoice) IsKeep() bool {
	return dc.kind == vehicleChoiceKeep
}

// IsClear reports whether the choice asks to unlink the driver.
func (dc DriverChoice) IsClear() bool {
	return dc.kind == vehicleChoiceClear
}

// Assignment returns the requested driver CURP and true if the choice
// asks to link a concrete driver, and empty and false otherwise.
func (dc DriverChoice) Assignment() (string, bool) {
	if dc.kind != vehicleChoiceAssign {
		return "", false
	}
	return dc.curp, true
}

// ParseDriverChoice converts the raw curpConductor form field into a
// DriverChoice, with the same absence/sentinel semantics as
// ParseVehicleChoice.
func ParseDriverChoice(raw string, present bool) DriverChoice {
	if !present {
		return KeepDriver()
	}
	if raw == "" || raw == UnassignedSentinel {
		return ClearDriver()
	}
	return AssignDriver(raw)
}

// ParseVehicleChoice converts the raw vehiculoId form field into a
// VehicleChoice. The present flag tells whether the field appeared in
// the submitted form at all; an absent field means "keep". A present
// field holding the unassigned sentinel or an empty string means
// "clear", and any other value must be a positive vehicle ID.
func ParseVehicleChoice(raw string, present bool) (VehicleChoice, error) {
	if !present {
		return KeepVehicle(), nil
	}
	if raw == "" || raw == UnassignedSentinel {
		return ClearVehicle(), nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return KeepVehicle(), fmt.Errorf(
			"vehicle id %q is not a positive integer", raw,
		)
	}
	return AssignVehicle(id), nil
}
