// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package driversrp

import (
	"context"
	"fmt"
	"time"

	"github.com/flotamx/flotaweb/pkg/adapter/db/postgres"
	"github.com/flotamx/flotaweb/pkg/adapter/db/postgres/vehiclesrp"
	"github.com/flotamx/flotaweb/pkg/core/cerr"
	"github.com/flotamx/flotaweb/pkg/core/model"
	"github.com/flotamx/flotaweb/pkg/core/repo"
	"gorm.io/gorm"
)

type gConductor struct {
	ID              int64     `gorm:"primaryKey;column:id"`
	NombreCompleto  string    `gorm:"column:nombre_completo"`
	Curp            string    `gorm:"column:curp"`
	Rfc             string    `gorm:"column:rfc"`
	Licencia        string    `gorm:"column:licencia"`
	LicenciaVigente bool      `gorm:"column:licencia_vigente"`
	Telefono        string    `gorm:"column:telefono"`
	Correo          string    `gorm:"column:correo"`
	ClaveOficina    string    `gorm:"column:clave_oficina"`
	Disponibilidad  bool      `gorm:"column:disponibilidad"`
	FechaAlta       time.Time `gorm:"column:fecha_alta"`
}

func (gc *gConductor) TableName() string {
	return "conductores"
}

func (gc *gConductor) Model() *model.Driver {
	return &model.Driver{
		ID:           gc.ID,
		FullName:     gc.NombreCompleto,
		CURP:         gc.Curp,
		RFC:          gc.Rfc,
		License:      gc.Licencia,
		LicenseValid: gc.LicenciaVigente,
		Phone:        gc.Telefono,
		Email:        gc.Correo,
		BranchCode:   gc.ClaveOficina,
		Available:    gc.Disponibilidad,
		RegisteredAt: gc.FechaAlta,
	}
}

func fromModel(d *model.Driver) *gConductor {
	return &gConductor{
		ID:              d.ID,
		NombreCompleto:  d.FullName,
		Curp:            d.CURP,
		Rfc:             d.RFC,
		Licencia:        d.License,
		LicenciaVigente: d.LicenseValid,
		Telefono:        d.Phone,
		Correo:          d.Email,
		ClaveOficina:    d.BranchCode,
		Disponibilidad:  d.Available,
		FechaAlta:       d.RegisteredAt,
	}
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, d *model.Driver) error {
	gdb := q.GORM(ctx)
	gc := fromModel(d)
	if err := gdb.Create(gc).Error; err != nil {
		return postgres.WrapWriteError(err)
	}
	d.ID = gc.ID
	return nil
}

// Update persists all columns of d, selected explicitly so false
// booleans and empty strings overwrite as well.
func Update[Q postgres.Queryer](ctx context.Context, q Q, d *model.Driver) error {
	gdb := q.GORM(ctx)
	tt := gdb.Model(&gConductor{}).Where("id = ?", d.ID).Select(
		"nombre_completo", "curp", "rfc", "licencia",
		"licencia_vigente", "telefono", "correo", "clave_oficina",
		"disponibilidad",
	).Updates(fromModel(d))
	if err := tt.Error; err != nil {
		return postgres.WrapWriteError(err)
	}
	if tt.RowsAffected == 0 {
		return cerr.NotFound(
			fmt.Errorf("driver %d does not exist", d.ID),
		)
	}
	return nil
}

// FindWithVehicles loads the id driver and the vehicles linked to its
// CURP, the state the reconciliation decides upon.
func FindWithVehicles[Q postgres.Queryer](ctx context.Context, q Q, id int64) (*model.Driver, []model.Vehicle, error) {
	gdb := q.GORM(ctx)
	var gc gConductor
	if err := gdb.First(&gc, "id = ?", id).Error; err != nil {
		return nil, nil, postgres.WrapWriteError(err)
	}
	vehicles, err := vehiclesrp.ByDriverCURP(ctx, q, gc.Curp)
	if err != nil {
		return nil, nil, fmt.Errorf(
			"vehicles of driver %d: %w", id, err,
		)
	}
	return gc.Model(), vehicles, nil
}

func List[Q postgres.Queryer](ctx context.Context, q Q, lq repo.DriversListQuery) ([]model.DriverSummary, int64, error) {
	gdb := q.GORM(ctx)
	base := func() *gorm.DB {
		b := gdb.Table("conductores AS c").Joins(
			"JOIN oficinas o ON o.clave_cuo = c.clave_oficina",
		)
		if lq.Search != "" {
			like := "%" + lq.Search + "%"
			b = b.Where(
				"c.nombre_completo ILIKE ? OR c.curp ILIKE ?"+
					" OR c.rfc ILIKE ? OR c.correo ILIKE ?",
				like, like, like, like,
			)
		}
		if lq.BranchCode != "" {
			b = b.Where("c.clave_oficina = ?", lq.BranchCode)
		}
		return b
	}
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}
	var rows []struct {
		gConductor
		ClaveCuo        string `gorm:"column:clave_cuo"`
		NombreCuo       string `gorm:"column:nombre_cuo"`
		NombreEntidad   string `gorm:"column:nombre_entidad"`
		NombreMunicipio string `gorm:"column:nombre_municipio"`
	}
	err := base().Select(
		"c.*, o.clave_cuo, o.nombre_cuo, o.nombre_entidad,"+
			" o.nombre_municipio",
	).Order("c.nombre_completo ASC").Offset(lq.Offset).
		Limit(lq.Limit).Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("query: %w", err)
	}
	out := make([]model.DriverSummary, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		out = append(out, model.DriverSummary{
			Driver: *r.gConductor.Model(),
			Branch: model.BranchRef{
				Code:         r.ClaveCuo,
				Name:         r.NombreCuo,
				Entity:       r.NombreEntidad,
				Municipality: r.NombreMunicipio,
			},
		})
	}
	if err := attachVehicles(ctx, gdb, out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// attachVehicles fills in the linked vehicles of each listed driver
// with one query over all the page's CURPs.
func attachVehicles(ctx context.Context, gdb *gorm.DB, drivers []model.DriverSummary) error {
	if len(drivers) == 0 {
		return nil
	}
	curps := make([]string, 0, len(drivers))
	for i := range drivers {
		curps = append(curps, drivers[i].CURP)
	}
	var rows []struct {
		ID            int64  `gorm:"column:id"`
		Placas        string `gorm:"column:placas"`
		TipoVehiculo  string `gorm:"column:tipo_vehiculo"`
		CurpConductor string `gorm:"column:curp_conductor"`
	}
	err := gdb.Table("unidades AS u").Select(
		"u.id, u.placas, u.curp_conductor, t.tipo_vehiculo",
	).Joins(
		"JOIN tipos_vehiculo t ON t.id = u.id_tipo_vehiculo",
	).Where(
		"u.curp_conductor IN ?", curps,
	).Order("u.id ASC").Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	byCURP := make(map[string][]model.VehicleRef, len(rows))
	for _, r := range rows {
		byCURP[r.CurpConductor] = append(
			byCURP[r.CurpConductor], model.VehicleRef{
				ID:       r.ID,
				Plate:    r.Placas,
				TypeName: r.TipoVehiculo,
			},
		)
	}
	for i := range drivers {
		drivers[i].Vehicles = byCURP[drivers[i].CURP]
	}
	return nil
}
