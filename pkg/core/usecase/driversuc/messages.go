// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package driversuc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flotamx/flotaweb/pkg/core/cerr"
	"github.com/flotamx/flotaweb/pkg/core/log"
)

// User-facing messages of the drivers mutations. The dashboard shows
// them verbatim, so they stay in Spanish and never contain store
// error details.
const (
	msgCreateFallback = "Error al crear el conductor. Intenta de nuevo."
	msgUpdateFallback = "Error al actualizar el conductor. " +
		"Intenta de nuevo."
	msgDuplicateFallback = "Ya existe un conductor con estos datos. " +
		"Verifica CURP y RFC."
	msgReferenceFallback = "Error de referencia: uno de los campos " +
		"hace referencia a un registro que no existe."
	msgBranchMissing = "La sucursal seleccionada no existe. " +
		"Por favor selecciona una sucursal válida."
	msgVehicleMissing = "La unidad seleccionada no existe. " +
		"Por favor selecciona una unidad válida."
	msgVehicleClaimed = "La unidad seleccionada acaba de ser asignada " +
		"a otro conductor. Intenta de nuevo."
)

// explain converts a failed mutation into an error whose message can
// be shown to the end user. Validation errors pass through untouched
// (they already carry their message), store violations are translated
// into field-attributed messages using the submitted values from req
// (the store error itself does not carry them), and anything else is
// logged and replaced by the fallback message.
func (uc *UseCase) explain(
	ctx context.Context, err error, req Request, fallback string,
) error {
	var dup *cerr.DuplicateError
	if errors.As(err, &dup) {
		log.Warn(ctx, "driver write hit a unique constraint",
			log.Err("error", err))
		switch {
		case strings.Contains(dup.Constraint, "curp"):
			return cerr.Conflict(fmt.Errorf(
				"El CURP %q ya está registrado en otro conductor.",
				req.CURP,
			))
		case strings.Contains(dup.Constraint, "rfc"):
			return cerr.Conflict(fmt.Errorf(
				"El RFC %q ya está registrado en otro conductor.",
				req.RFC,
			))
		default:
			return cerr.Conflict(errors.New(msgDuplicateFallback))
		}
	}
	var fk *cerr.ForeignKeyError
	if errors.As(err, &fk) {
		log.Warn(ctx, "driver write hit a foreign key constraint",
			log.Err("error", err))
		if strings.Contains(fk.Constraint, "oficina") {
			return cerr.BadRequest(errors.New(msgBranchMissing))
		}
		return cerr.BadRequest(errors.New(msgReferenceFallback))
	}
	if errors.Is(err, errVehicleJustClaimed) {
		return cerr.Conflict(errors.New(msgVehicleClaimed))
	}
	if errors.Is(err, errVehicleMissing) {
		return cerr.BadRequest(errors.New(msgVehicleMissing))
	}
	log.Error(ctx, "driver mutation failed", log.Err("error", err))
	return cerr.Internal(errors.New(fallback))
}
