// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesuc

import (
	"errors"
	"strings"
	"time"

	"github.com/flotamx/flotaweb/pkg/core/cerr"
	"github.com/flotamx/flotaweb/pkg/core/model"
)

// Request is the validated form of a vehicle create/update
// submission. Driver is the three-state selection described by
// model.DriverChoice.
type Request struct {
	Plate            string
	RegistrationCard string
	TypeID           int64
	BranchCode       string
	Status           model.VehicleStatus
	CargoVolume      float64
	Axles            int
	Tires            int
	Driver           model.DriverChoice
}

// Validate checks the required fields and returns a cerr.BadRequest
// carrying the user-facing message of the first invalid one.
func (req Request) Validate() error {
	switch {
	case strings.TrimSpace(req.Plate) == "":
		return cerr.BadRequest(errors.New(
			"Las placas son obligatorias.",
		))
	case strings.TrimSpace(req.RegistrationCard) == "":
		return cerr.BadRequest(errors.New(
			"La tarjeta de circulación es obligatoria.",
		))
	case req.TypeID <= 0:
		return cerr.BadRequest(errors.New(
			"El tipo de vehículo es obligatorio.",
		))
	case strings.TrimSpace(req.BranchCode) == "":
		return cerr.BadRequest(errors.New(
			"La sucursal es obligatoria. " +
				"Por favor selecciona una sucursal.",
		))
	}
	if err := req.Status.Validate(); err != nil {
		return cerr.BadRequest(errors.New(
			"El estado de la unidad no es válido.",
		))
	}
	return nil
}

// vehicle converts the request into a vehicle model with a fresh
// registration timestamp and no driver link; callers fill in ID,
// RegisteredAt, and DriverCURP as their flow requires.
func (req Request) vehicle() *model.Vehicle {
	return &model.Vehicle{
		Plate:            req.Plate,
		RegistrationCard: req.RegistrationCard,
		TypeID:           req.TypeID,
		BranchCode:       req.BranchCode,
		Status:           req.Status,
		CargoVolume:      req.CargoVolume,
		Axles:            req.Axles,
		Tires:            req.Tires,
		RegisteredAt:     time.Now(),
	}
}
