// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package driversrs

import (
	"net/http"
	"time"

	"github.com/flotamx/flotaweb/pkg/adapter/restful/gin/serdser"
	"github.com/flotamx/flotaweb/pkg/core/model"
	"github.com/flotamx/flotaweb/pkg/core/usecase/driversuc"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// allBranches is the filter value meaning no branch filter at all,
// as the dashboard dropdown sends it.
const allBranches = "Todas"

type listQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
	Branch string `form:"sucursal"`
}

func (q *listQuery) branchCode() string {
	if q.Branch == allBranches {
		return ""
	}
	return q.Branch
}

func (rs *resource) DserListQuery(c *gin.Context) *listQuery {
	q := &listQuery{}
	if ok := serdser.Bind(c, q, binding.Query); !ok {
		return nil
	}
	return q
}

type availableQuery struct {
	BranchCode string `form:"claveOficina" binding:"required"`
	CURP       string `form:"curp"`
}

func (rs *resource) DserAvailableQuery(c *gin.Context) *availableQuery {
	q := &availableQuery{}
	if ok := serdser.Bind(c, q, binding.Query); !ok {
		return nil
	}
	return q
}

// DserDriverForm reads the driver submission form. The vehiculoId
// field is three-state: absence, the unassigned sentinel, or a
// concrete vehicle ID mean different link instructions, so it is read
// with presence detection instead of a binding struct.
func (rs *resource) DserDriverForm(c *gin.Context) *driversuc.Request {
	rawVehicle, present := c.GetPostForm("vehiculoId")
	vehicle, err := model.ParseVehicleChoice(rawVehicle, present)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "La unidad seleccionada no es válida.",
		})
		return nil
	}
	return &driversuc.Request{
		FullName:     c.PostForm("nombreCompleto"),
		CURP:         c.PostForm("curp"),
		RFC:          c.PostForm("rfc"),
		License:      c.PostForm("licencia"),
		LicenseValid: c.PostForm("licenciaVigente") == "true",
		Phone:        c.PostForm("telefono"),
		Email:        c.PostForm("correo"),
		BranchCode:   c.PostForm("claveOficina"),
		Available:    c.PostForm("disponibilidad") == "true",
		Vehicle:      vehicle,
	}
}

type branchDTO struct {
	ClaveCuo        string `json:"claveCuo"`
	NombreCuo       string `json:"nombreCuo"`
	NombreEntidad   string `json:"nombreEntidad"`
	NombreMunicipio string `json:"nombreMunicipio"`
}

type vehicleRefDTO struct {
	ID           int64  `json:"id"`
	Placas       string `json:"placas"`
	TipoVehiculo string `json:"tipoVehiculo"`
}

type driverDTO struct {
	ID              int64           `json:"id"`
	NombreCompleto  string          `json:"nombreCompleto"`
	Curp            string          `json:"curp"`
	Rfc             string          `json:"rfc"`
	Licencia        string          `json:"licencia"`
	LicenciaVigente bool            `json:"licenciaVigente"`
	Telefono        string          `json:"telefono"`
	Correo          string          `json:"correo"`
	Disponibilidad  bool            `json:"disponibilidad"`
	FechaAlta       time.Time       `json:"fechaAlta"`
	Sucursal        branchDTO       `json:"sucursal"`
	Unidades        []vehicleRefDTO `json:"unidades"`
}

type paginationDTO struct {
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
}

type driversPageDTO struct {
	Data       []driverDTO   `json:"data"`
	Pagination paginationDTO `json:"pagination"`
}

func SerDriversPage(rows []model.DriverSummary, pg model.Pagination) driversPageDTO {
	data := make([]driverDTO, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		vehicles := make([]vehicleRefDTO, 0, len(r.Vehicles))
		for _, v := range r.Vehicles {
			vehicles = append(vehicles, vehicleRefDTO{
				ID:           v.ID,
				Placas:       v.Plate,
				TipoVehiculo: v.TypeName,
			})
		}
		data = append(data, driverDTO{
			ID:              r.ID,
			NombreCompleto:  r.FullName,
			Curp:            r.CURP,
			Rfc:             r.RFC,
			Licencia:        r.License,
			LicenciaVigente: r.LicenseValid,
			Telefono:        r.Phone,
			Correo:          r.Email,
			Disponibilidad:  r.Available,
			FechaAlta:       r.RegisteredAt,
			Sucursal: branchDTO{
				ClaveCuo:        r.Branch.Code,
				NombreCuo:       r.Branch.Name,
				NombreEntidad:   r.Branch.Entity,
				NombreMunicipio: r.Branch.Municipality,
			},
			Unidades: vehicles,
		})
	}
	return driversPageDTO{
		Data: data,
		Pagination: paginationDTO{
			Total:       pg.Total,
			TotalPages:  pg.TotalPages,
			CurrentPage: pg.CurrentPage,
			Limit:       pg.Limit,
		},
	}
}

type availableVehicleDTO struct {
	ID     int64  `json:"id"`
	Placas string `json:"placas"`
	Tipo   string `json:"tipo"`
}

func SerAvailableVehicles(rows []model.AvailableVehicle) []availableVehicleDTO {
	out := make([]availableVehicleDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, availableVehicleDTO{
			ID:     r.ID,
			Placas: r.Plate,
			Tipo:   r.TypeName,
		})
	}
	return out
}
