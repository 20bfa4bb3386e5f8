// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"fmt"

	"github.com/flotamx/flotaweb/pkg/core/repo"
)

// schemaSQL creates the four tables of the fleet schema. Constraint
// names matter: the use case layer attributes violations to form
// fields by the column name embedded in the constraint name, so they
// are spelled out instead of letting the DBMS derive them.
//
// The curp_conductor column is the driver-vehicle link: NULL (or
// empty, a form both the legacy data and the dashboard produce) means
// unassigned. The link is by the driver's CURP, not its surrogate id,
// and the at-most-one-vehicle-per-driver rule is maintained by the
// application, not by a constraint.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS oficinas (
    id_oficina BIGSERIAL PRIMARY KEY,
    clave_cuo VARCHAR(16) NOT NULL,
    nombre_cuo VARCHAR(128) NOT NULL,
    nombre_entidad VARCHAR(64) NOT NULL,
    nombre_municipio VARCHAR(128) NOT NULL,
    domicilio TEXT NOT NULL DEFAULT '',
    telefono VARCHAR(32) NOT NULL DEFAULT '',
    activo BOOLEAN NOT NULL DEFAULT TRUE,
    CONSTRAINT oficinas_clave_cuo_key UNIQUE (clave_cuo)
);

CREATE TABLE IF NOT EXISTS tipos_vehiculo (
    id BIGSERIAL PRIMARY KEY,
    tipo_vehiculo VARCHAR(64) NOT NULL,
    capacidad_kg NUMERIC(10,2) NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS conductores (
    id BIGSERIAL PRIMARY KEY,
    nombre_completo VARCHAR(128) NOT NULL,
    curp VARCHAR(18) NOT NULL,
    rfc VARCHAR(13) NOT NULL,
    licencia VARCHAR(32) NOT NULL,
    licencia_vigente BOOLEAN NOT NULL DEFAULT FALSE,
    telefono VARCHAR(32) NOT NULL,
    correo VARCHAR(128) NOT NULL,
    clave_oficina VARCHAR(16) NOT NULL,
    disponibilidad BOOLEAN NOT NULL DEFAULT TRUE,
    fecha_alta TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT conductores_curp_key UNIQUE (curp),
    CONSTRAINT conductores_rfc_key UNIQUE (rfc),
    CONSTRAINT conductores_clave_oficina_fkey
        FOREIGN KEY (clave_oficina) REFERENCES oficinas (clave_cuo)
);

CREATE TABLE IF NOT EXISTS unidades (
    id BIGSERIAL PRIMARY KEY,
    placas VARCHAR(16) NOT NULL,
    tarjeta_circulacion VARCHAR(32) NOT NULL,
    id_tipo_vehiculo BIGINT NOT NULL,
    clave_oficina VARCHAR(16) NOT NULL,
    curp_conductor VARCHAR(18),
    volumen_carga NUMERIC(10,2) NOT NULL DEFAULT 0,
    ejes INT NOT NULL DEFAULT 2,
    llantas INT NOT NULL DEFAULT 4,
    estado VARCHAR(16) NOT NULL DEFAULT 'disponible',
    fecha_alta TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT unidades_placas_key UNIQUE (placas),
    CONSTRAINT unidades_tarjeta_circulacion_key
        UNIQUE (tarjeta_circulacion),
    CONSTRAINT unidades_id_tipo_vehiculo_fkey
        FOREIGN KEY (id_tipo_vehiculo) REFERENCES tipos_vehiculo (id),
    CONSTRAINT unidades_clave_oficina_fkey
        FOREIGN KEY (clave_oficina) REFERENCES oficinas (clave_cuo),
    CONSTRAINT unidades_curp_conductor_fkey
        FOREIGN KEY (curp_conductor) REFERENCES conductores (curp)
);

CREATE INDEX IF NOT EXISTS unidades_curp_conductor_idx
    ON unidades (curp_conductor);
`

// InitSchema creates the fleet tables if they do not exist yet. It is
// used by the "db init" command and by the integration test suites.
func InitSchema(ctx context.Context, p *Pool) error {
	err := p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		_, err := c.Exec(ctx, schemaSQL)
		return err
	})
	if err != nil {
		return fmt.Errorf("creating fleet schema: %w", err)
	}
	return nil
}
