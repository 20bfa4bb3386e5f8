// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesuc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flotamx/flotaweb/pkg/core/cerr"
	"github.com/flotamx/flotaweb/pkg/core/log"
)

// User-facing messages of the vehicles mutations, Spanish like the
// dashboard which shows them verbatim.
const (
	msgCreateFallback = "Error al crear la unidad. Intenta de nuevo."
	msgUpdateFallback = "Error al actualizar la unidad. " +
		"Intenta de nuevo."
	msgDuplicateFallback = "Ya existe una unidad con estos datos. " +
		"Verifica placas y tarjeta de circulación."
	msgReferenceFallback = "Error de referencia: uno de los campos " +
		"hace referencia a un registro que no existe."
	msgBranchMissing = "La sucursal seleccionada no existe. " +
		"Por favor selecciona una sucursal válida."
	msgTypeMissing = "El tipo de vehículo seleccionado no existe. " +
		"Por favor selecciona uno válido."
	msgDriverMissing = "El conductor seleccionado no existe. " +
		"Por favor selecciona uno válido."
)

// explain converts a failed mutation into an error whose message can
// be shown to the end user, translating store violations with the
// submitted values from req. See driversuc for the policy; this is
// its vehicles counterpart.
func (uc *UseCase) explain(
	ctx context.Context, err error, req Request, fallback string,
) error {
	var dup *cerr.DuplicateError
	if errors.As(err, &dup) {
		log.Warn(ctx, "vehicle write hit a unique constraint",
			log.Err("error", err))
		switch {
		case strings.Contains(dup.Constraint, "placas"):
			return cerr.Conflict(fmt.Errorf(
				"Las placas %q ya están registradas en otra unidad.",
				req.Plate,
			))
		case strings.Contains(dup.Constraint, "tarjeta"):
			return cerr.Conflict(fmt.Errorf(
				"La tarjeta de circulación %q ya está registrada "+
					"en otra unidad.",
				req.RegistrationCard,
			))
		default:
			return cerr.Conflict(errors.New(msgDuplicateFallback))
		}
	}
	var fk *cerr.ForeignKeyError
	if errors.As(err, &fk) {
		log.Warn(ctx, "vehicle write hit a foreign key constraint",
			log.Err("error", err))
		switch {
		case strings.Contains(fk.Constraint, "oficina"):
			return cerr.BadRequest(errors.New(msgBranchMissing))
		case strings.Contains(fk.Constraint, "tipo"):
			return cerr.BadRequest(errors.New(msgTypeMissing))
		case strings.Contains(fk.Constraint, "conductor"):
			return cerr.BadRequest(errors.New(msgDriverMissing))
		default:
			return cerr.BadRequest(errors.New(msgReferenceFallback))
		}
	}
	log.Error(ctx, "vehicle mutation failed", log.Err("error", err))
	return cerr.Internal(errors.New(fallback))
}
