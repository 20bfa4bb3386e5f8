// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesrp

import (
	"context"
	"fmt"
	"time"

	"github.com/flotamx/flotaweb/pkg/adapter/db/postgres"
	"github.com/flotamx/flotaweb/pkg/core/cerr"
	"github.com/flotamx/flotaweb/pkg/core/model"
	"github.com/flotamx/flotaweb/pkg/core/repo"
	"gorm.io/gorm"
)

// unassignedPred matches vehicles without a driver. Legacy rows use
// an empty string instead of NULL, so both forms count.
const unassignedPred = "(u.curp_conductor IS NULL OR u.curp_conductor = '')"

type gUnidad struct {
	ID                 int64     `gorm:"primaryKey;column:id"`
	Placas             string    `gorm:"column:placas"`
	TarjetaCirculacion string    `gorm:"column:tarjeta_circulacion"`
	IDTipoVehiculo     int64     `gorm:"column:id_tipo_vehiculo"`
	ClaveOficina       string    `gorm:"column:clave_oficina"`
	CurpConductor      *string   `gorm:"column:curp_conductor"`
	VolumenCarga       float64   `gorm:"column:volumen_carga"`
	Ejes               int       `gorm:"column:ejes"`
	Llantas            int       `gorm:"column:llantas"`
	Estado             string    `gorm:"column:estado"`
	FechaAlta          time.Time `gorm:"column:fecha_alta"`
}

func (gu *gUnidad) TableName() string {
	return "unidades"
}

func (gu *gUnidad) Model() (*model.Vehicle, error) {
	st, err := model.ParseVehicleStatus(gu.Estado)
	if err != nil {
		return nil, fmt.Errorf("vehicle %d status %q: %w", gu.ID, gu.Estado, err)
	}
	curp := ""
	if gu.CurpConductor != nil {
		curp = *gu.CurpConductor
	}
	return &model.Vehicle{
		ID:               gu.ID,
		Plate:            gu.Placas,
		RegistrationCard: gu.TarjetaCirculacion,
		TypeID:           gu.IDTipoVehiculo,
		BranchCode:       gu.ClaveOficina,
		DriverCURP:       curp,
		CargoVolume:      gu.VolumenCarga,
		Axles:            gu.Ejes,
		Tires:            gu.Llantas,
		Status:           st,
		RegisteredAt:     gu.FechaAlta,
	}, nil
}

func fromModel(v *model.Vehicle) *gUnidad {
	gu := &gUnidad{
		ID:                 v.ID,
		Placas:             v.Plate,
		TarjetaCirculacion: v.RegistrationCard,
		IDTipoVehiculo:     v.TypeID,
		ClaveOficina:       v.BranchCode,
		VolumenCarga:       v.CargoVolume,
		Ejes:               v.Axles,
		Llantas:            v.Tires,
		Estado:             v.Status.String(),
		FechaAlta:          v.RegisteredAt,
	}
	if v.DriverCURP != "" {
		curp := v.DriverCURP
		gu.CurpConductor = &curp
	}
	return gu
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, v *model.Vehicle) error {
	gdb := q.GORM(ctx)
	gu := fromModel(v)
	if err := gdb.Create(gu).Error; err != nil {
		return postgres.WrapWriteError(err)
	}
	v.ID = gu.ID
	return nil
}

// Update persists all columns of v except the driver link, which is
// owned by the SetDriver/ClaimForDriver/UnassignDriver primitives.
func Update[Q postgres.Queryer](ctx context.Context, q Q, v *model.Vehicle) error {
	gdb := q.GORM(ctx)
	tt := gdb.Model(&gUnidad{}).Where("id = ?", v.ID).Select(
		"placas", "tarjeta_circulacion", "id_tipo_vehiculo",
		"clave_oficina", "volumen_carga", "ejes", "llantas", "estado",
	).Updates(fromModel(v))
	if err := tt.Error; err != nil {
		return postgres.WrapWriteError(err)
	}
	if tt.RowsAffected == 0 {
		return cerr.NotFound(
			fmt.Errorf("vehicle %d does not exist", v.ID),
		)
	}
	return nil
}

func FindByID[Q postgres.Queryer](ctx context.Context, q Q, id int64) (*model.Vehicle, error) {
	gdb := q.GORM(ctx)
	var gu gUnidad
	if err := gdb.First(&gu, "id = ?", id).Error; err != nil {
		return nil, postgres.WrapWriteError(err)
	}
	return gu.Model()
}

// ByDriverCURP lists the vehicles currently linked to the curp
// driver, ordered by ID. It is also used by the drivers repository
// when loading a driver together with its links.
func ByDriverCURP[Q postgres.Queryer](ctx context.Context, q Q, curp string) ([]model.Vehicle, error) {
	gdb := q.GORM(ctx)
	var gus []gUnidad
	err := gdb.Where("curp_conductor = ?", curp).Order("id ASC").Find(&gus).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	out := make([]model.Vehicle, 0, len(gus))
	for i := range gus {
		v, err := gus[i].Model()
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func Available[Q postgres.Queryer](ctx context.Context, q Q, branchCode, driverCURP string) ([]model.AvailableVehicle, error) {
	gdb := q.GORM(ctx)
	rows := gdb.Table("unidades AS u").Select(
		"u.id, u.placas, t.tipo_vehiculo",
	).Joins(
		"JOIN tipos_vehiculo t ON t.id = u.id_tipo_vehiculo",
	).Where("u.clave_oficina = ?", branchCode)
	if driverCURP != "" {
		rows = rows.Where(
			unassignedPred+" OR u.curp_conductor = ?", driverCURP,
		)
	} else {
		rows = rows.Where(unassignedPred)
	}
	var out []struct {
		ID           int64  `gorm:"column:id"`
		Placas       string `gorm:"column:placas"`
		TipoVehiculo string `gorm:"column:tipo_vehiculo"`
	}
	if err := rows.Order("u.placas ASC").Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	avail := make([]model.AvailableVehicle, 0, len(out))
	for _, r := range out {
		avail = append(avail, model.AvailableVehicle{
			ID:       r.ID,
			Plate:    r.Placas,
			TypeName: r.TipoVehiculo,
		})
	}
	return avail, nil
}

// UnassignDriver clears the driver reference of every vehicle linked
// to curp, returning how many rows were unlinked. More than one row
// means the at-most-one rule was broken outside this application; the
// bulk form collapses it back on every reconciliation.
func UnassignDriver[Q postgres.Queryer](ctx context.Context, q Q, curp string) (int64, error) {
	gdb := q.GORM(ctx)
	tt := gdb.Model(&gUnidad{}).Where(
		"curp_conductor = ?", curp,
	).Update("curp_conductor", nil)
	if err := tt.Error; err != nil {
		return 0, postgres.WrapWriteError(err)
	}
	return tt.RowsAffected, nil
}

// ClaimForDriver is the conditional link: it only succeeds while the
// vehicle is unassigned or already linked to curp, so two concurrent
// updates cannot both claim the same vehicle. A zero-rows-affected
// outcome distinguishes a lost race (false, nil) from a vehicle which
// does not exist at all (cerr.NotFound).
func ClaimForDriver[Q postgres.Queryer](ctx context.Context, q Q, vehicleID int64, curp string) (bool, error) {
	gdb := q.GORM(ctx)
	tt := gdb.Model(&gUnidad{}).Where(
		"id = ? AND (curp_conductor IS NULL OR curp_conductor = ''"+
			" OR curp_conductor = ?)",
		vehicleID, curp,
	).Update("curp_conductor", curp)
	if err := tt.Error; err != nil {
		return false, postgres.WrapWriteError(err)
	}
	if tt.RowsAffected > 0 {
		return true, nil
	}
	var n int64
	err := gdb.Model(&gUnidad{}).Where("id = ?", vehicleID).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	if n == 0 {
		return false, cerr.NotFound(
			fmt.Errorf("vehicle %d does not exist", vehicleID),
		)
	}
	return false, nil
}

func SetDriver[Q postgres.Queryer](ctx context.Context, q Q, vehicleID int64, curp string) error {
	gdb := q.GORM(ctx)
	var value any
	if curp != "" {
		value = curp
	}
	tt := gdb.Model(&gUnidad{}).Where("id = ?", vehicleID).
		Update("curp_conductor", value)
	if err := tt.Error; err != nil {
		return postgres.WrapWriteError(err)
	}
	if tt.RowsAffected == 0 {
		return cerr.NotFound(
			fmt.Errorf("vehicle %d does not exist", vehicleID),
		)
	}
	return nil
}

func List[Q postgres.Queryer](ctx context.Context, q Q, lq repo.VehiclesListQuery) ([]model.VehicleSummary, int64, error) {
	gdb := q.GORM(ctx)
	base := func() *gorm.DB {
		b := gdb.Table("unidades AS u").Joins(
			"JOIN tipos_vehiculo t ON t.id = u.id_tipo_vehiculo",
		).Joins(
			"JOIN oficinas o ON o.clave_cuo = u.clave_oficina",
		).Joins(
			"LEFT JOIN conductores c ON c.curp = u.curp_conductor",
		)
		if lq.Search != "" {
			like := "%" + lq.Search + "%"
			b = b.Where(
				"u.placas ILIKE ? OR c.nombre_completo ILIKE ?"+
					" OR o.nombre_cuo ILIKE ?",
				like, like, like,
			)
		}
		if lq.BranchCode != "" {
			b = b.Where("u.clave_oficina = ?", lq.BranchCode)
		}
		if lq.TypeName != "" {
			b = b.Where("t.tipo_vehiculo = ?", lq.TypeName)
		}
		return b
	}
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}
	var rows []struct {
		ID              int64   `gorm:"column:id"`
		Placas          string  `gorm:"column:placas"`
		TipoVehiculo    string  `gorm:"column:tipo_vehiculo"`
		CapacidadKg     float64 `gorm:"column:capacidad_kg"`
		Estado          string  `gorm:"column:estado"`
		NombreCompleto  *string `gorm:"column:nombre_completo"`
		ClaveCuo        string  `gorm:"column:clave_cuo"`
		NombreCuo       string  `gorm:"column:nombre_cuo"`
		NombreEntidad   string  `gorm:"column:nombre_entidad"`
		NombreMunicipio string  `gorm:"column:nombre_municipio"`
	}
	err := base().Select(
		"u.id, u.placas, u.estado, t.tipo_vehiculo, t.capacidad_kg,"+
			" c.nombre_completo, o.clave_cuo, o.nombre_cuo,"+
			" o.nombre_entidad, o.nombre_municipio",
	).Order("u.id ASC").Offset(lq.Offset).Limit(lq.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("query: %w", err)
	}
	out := make([]model.VehicleSummary, 0, len(rows))
	for _, r := range rows {
		st, err := model.ParseVehicleStatus(r.Estado)
		if err != nil {
			return nil, 0, fmt.Errorf(
				"vehicle %d status %q: %w", r.ID, r.Estado, err,
			)
		}
		name := ""
		if r.NombreCompleto != nil {
			name = *r.NombreCompleto
		}
		out = append(out, model.VehicleSummary{
			ID:         r.ID,
			Plate:      r.Placas,
			TypeName:   r.TipoVehiculo,
			CapacityKg: r.CapacidadKg,
			Status:     st,
			DriverName: name,
			Branch: model.BranchRef{
				Code:         r.ClaveCuo,
				Name:         r.NombreCuo,
				Entity:       r.NombreEntidad,
				Municipality: r.NombreMunicipio,
			},
		})
	}
	return out, total, nil
}

func ListWithDrivers[Q postgres.Queryer](ctx context.Context, q Q) ([]model.VehicleWithDriver, error) {
	gdb := q.GORM(ctx)
	var rows []struct {
		ID              int64   `gorm:"column:id"`
		Placas          string  `gorm:"column:placas"`
		TipoVehiculo    string  `gorm:"column:tipo_vehiculo"`
		Estado          string  `gorm:"column:estado"`
		ConductorID     *int64  `gorm:"column:conductor_id"`
		NombreCompleto  *string `gorm:"column:nombre_completo"`
		Curp            *string `gorm:"column:curp"`
		Telefono        *string `gorm:"column:telefono"`
		Correo          *string `gorm:"column:correo"`
		Disponibilidad  *bool   `gorm:"column:disponibilidad"`
		ClaveCuo        string  `gorm:"column:clave_cuo"`
		NombreCuo       string  `gorm:"column:nombre_cuo"`
		NombreEntidad   string  `gorm:"column:nombre_entidad"`
		NombreMunicipio string  `gorm:"column:nombre_municipio"`
	}
	err := gdb.Table("unidades AS u").Select(
		"u.id, u.placas, u.estado, t.tipo_vehiculo,"+
			" c.id AS conductor_id, c.nombre_completo, c.curp,"+
			" c.telefono, c.correo, c.disponibilidad,"+
			" o.clave_cuo, o.nombre_cuo, o.nombre_entidad,"+
			" o.nombre_municipio",
	).Joins(
		"JOIN tipos_vehiculo t ON t.id = u.id_tipo_vehiculo",
	).Joins(
		"JOIN oficinas o ON o.clave_cuo = u.clave_oficina",
	).Joins(
		"LEFT JOIN conductores c ON c.curp = u.curp_conductor",
	).Order("u.id ASC").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	out := make([]model.VehicleWithDriver, 0, len(rows))
	for _, r := range rows {
		st, err := model.ParseVehicleStatus(r.Estado)
		if err != nil {
			return nil, fmt.Errorf(
				"vehicle %d status %q: %w", r.ID, r.Estado, err,
			)
		}
		vwd := model.VehicleWithDriver{
			ID:       r.ID,
			Plate:    r.Placas,
			TypeName: r.TipoVehiculo,
			Status:   st,
			Branch: model.BranchRef{
				Code:         r.ClaveCuo,
				Name:         r.NombreCuo,
				Entity:       r.NombreEntidad,
				Municipality: r.NombreMunicipio,
			},
		}
		if r.ConductorID != nil {
			vwd.Driver = &model.DriverRef{
				ID:        *r.ConductorID,
				FullName:  deref(r.NombreCompleto),
				CURP:      deref(r.Curp),
				Phone:     deref(r.Telefono),
				Email:     deref(r.Correo),
				Available: r.Disponibilidad != nil && *r.Disponibilidad,
			}
		}
		out = append(out, vwd)
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
