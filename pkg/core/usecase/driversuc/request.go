// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package driversuc

import (
	"errors"
	"strings"
	"time"

	"github.com/flotamx/flotaweb/pkg/core/cerr"
	"github.com/flotamx/flotaweb/pkg/core/model"
)

// Request is the validated form of a driver create/update submission.
// All fields but Vehicle are required; Vehicle is the three-state
// selection described by model.VehicleChoice.
type Request struct {
	FullName     string
	CURP         string
	RFC          string
	License      string
	LicenseValid bool
	Phone        string
	Email        string
	BranchCode   string
	Available    bool
	Vehicle      model.VehicleChoice
}

// Validate checks the required fields and returns a cerr.BadRequest
// carrying the user-facing message of the first missing one. No store
// access happens before this check passes.
func (req Request) Validate() error {
	for _, f := range []struct {
		value, message string
	}{
		{req.FullName, "El nombre completo es obligatorio."},
		{req.CURP, "El CURP es obligatorio."},
		{req.RFC, "El RFC es obligatorio."},
		{req.License, "El número de licencia es obligatorio."},
		{req.Phone, "El teléfono es obligatorio."},
		{req.Email, "El correo electrónico es obligatorio."},
		{
			req.BranchCode,
			"La sucursal es obligatoria. " +
				"Por favor selecciona una sucursal.",
		},
	} {
		if strings.TrimSpace(f.value) == "" {
			return cerr.BadRequest(errors.New(f.message))
		}
	}
	return nil
}

// driver converts the request into a driver model with a fresh
// registration timestamp. Callers overwrite ID and RegisteredAt when
// updating an existing row.
func (req Request) driver() *model.Driver {
	return &model.Driver{
		FullName:     req.FullName,
		CURP:         req.CURP,
		RFC:          req.RFC,
		License:      req.License,
		LicenseValid: req.LicenseValid,
		Phone:        req.Phone,
		Email:        req.Email,
		BranchCode:   req.BranchCode,
		Available:    req.Available,
		RegisteredAt: time.Now(),
	}
}
