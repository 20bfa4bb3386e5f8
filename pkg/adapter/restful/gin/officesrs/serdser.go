// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package officesrs

import (
	"github.com/flotamx/flotaweb/pkg/core/model"
)

type officeDTO struct {
	ID        int64  `json:"id"`
	ClaveCuo  string `json:"claveCuo"`
	NombreCuo string `json:"nombreCuo"`
	Entidad   string `json:"entidad"`
	Municipio string `json:"municipio"`
	Telefono  string `json:"telefono"`
	Activo    bool   `json:"activo"`
	Domicilio string `json:"domicilio"`
}

type paginationDTO struct {
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
}

type officesPageDTO struct {
	Data       []officeDTO   `json:"data"`
	Pagination paginationDTO `json:"pagination"`
}

func SerOfficesPage(rows []model.BranchOffice, pg model.Pagination) officesPageDTO {
	data := make([]officeDTO, 0, len(rows))
	for _, r := range rows {
		data = append(data, officeDTO{
			ID:        r.ID,
			ClaveCuo:  r.Code,
			NombreCuo: r.Name,
			Entidad:   r.Entity,
			Municipio: r.Municipality,
			Telefono:  r.Phone,
			Activo:    r.Active,
			Domicilio: r.Address,
		})
	}
	return officesPageDTO{
		Data: data,
		Pagination: paginationDTO{
			Total:       pg.Total,
			TotalPages:  pg.TotalPages,
			CurrentPage: pg.CurrentPage,
			Limit:       pg.Limit,
		},
	}
}

type activeOfficeDTO struct {
	ClaveCuo      string `json:"claveCuo"`
	NombreCuo     string `json:"nombreCuo"`
	NombreEntidad string `json:"nombreEntidad"`
}

func SerActiveOffices(rows []model.BranchRef) []activeOfficeDTO {
	out := make([]activeOfficeDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, activeOfficeDTO{
			ClaveCuo:      r.Code,
			NombreCuo:     r.Name,
			NombreEntidad: r.Entity,
		})
	}
	return out
}

type vehicleTypeDTO struct {
	ID           int64   `json:"id"`
	TipoVehiculo string  `json:"tipoVehiculo"`
	CapacidadKg  float64 `json:"capacidadKg"`
}

func SerVehicleTypes(rows []model.VehicleType) []vehicleTypeDTO {
	out := make([]vehicleTypeDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, vehicleTypeDTO{
			ID:           r.ID,
			TipoVehiculo: r.Name,
			CapacidadKg:  r.CapacityKg,
		})
	}
	return out
}
