// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package officesrp

import (
	"context"
	"fmt"

	"github.com/flotamx/flotaweb/pkg/adapter/db/postgres"
	"github.com/flotamx/flotaweb/pkg/core/model"
	"github.com/flotamx/flotaweb/pkg/core/repo"
	"gorm.io/gorm"
)

type gOficina struct {
	ID              int64  `gorm:"primaryKey;column:id_oficina"`
	ClaveCuo        string `gorm:"column:clave_cuo"`
	NombreCuo       string `gorm:"column:nombre_cuo"`
	NombreEntidad   string `gorm:"column:nombre_entidad"`
	NombreMunicipio string `gorm:"column:nombre_municipio"`
	Domicilio       string `gorm:"column:domicilio"`
	Telefono        string `gorm:"column:telefono"`
	Activo          bool   `gorm:"column:activo"`
}

func (go1 *gOficina) TableName() string {
	return "oficinas"
}

func (go1 *gOficina) Model() model.BranchOffice {
	return model.BranchOffice{
		ID:           go1.ID,
		Code:         go1.ClaveCuo,
		Name:         go1.NombreCuo,
		Entity:       go1.NombreEntidad,
		Municipality: go1.NombreMunicipio,
		Address:      go1.Domicilio,
		Phone:        go1.Telefono,
		Active:       go1.Activo,
	}
}

type gTipoVehiculo struct {
	ID           int64   `gorm:"primaryKey;column:id"`
	TipoVehiculo string  `gorm:"column:tipo_vehiculo"`
	CapacidadKg  float64 `gorm:"column:capacidad_kg"`
}

func (gt *gTipoVehiculo) TableName() string {
	return "tipos_vehiculo"
}

func ListActive[Q postgres.Queryer](ctx context.Context, q Q) ([]model.BranchRef, error) {
	gdb := q.GORM(ctx)
	var rows []gOficina
	err := gdb.Where("activo = ?", true).
		Order("nombre_cuo ASC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	out := make([]model.BranchRef, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].Model().Ref())
	}
	return out, nil
}

func List[Q postgres.Queryer](ctx context.Context, q Q, lq repo.OfficesListQuery) ([]model.BranchOffice, int64, error) {
	gdb := q.GORM(ctx)
	base := func() *gorm.DB {
		b := gdb.Model(&gOficina{})
		if lq.Search != "" {
			like := "%" + lq.Search + "%"
			b = b.Where(
				"nombre_cuo ILIKE ? OR clave_cuo ILIKE ?"+
					" OR nombre_municipio ILIKE ?"+
					" OR nombre_entidad ILIKE ?",
				like, like, like, like,
			)
		}
		return b
	}
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}
	var rows []gOficina
	err := base().Order("nombre_cuo ASC").
		Offset(lq.Offset).Limit(lq.Limit).Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("query: %w", err)
	}
	out := make([]model.BranchOffice, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].Model())
	}
	return out, total, nil
}

func VehicleTypes[Q postgres.Queryer](ctx context.Context, q Q) ([]model.VehicleType, error) {
	gdb := q.GORM(ctx)
	var rows []gTipoVehiculo
	err := gdb.Order("tipo_vehiculo ASC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	out := make([]model.VehicleType, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.VehicleType{
			ID:         r.ID,
			Name:       r.TipoVehiculo,
			CapacityKg: r.CapacidadKg,
		})
	}
	return out, nil
}
