// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesrs

import (
	"net/http"
	"strconv"

	"github.com/flotamx/flotaweb/pkg/adapter/restful/gin/serdser"
	"github.com/flotamx/flotaweb/pkg/core/model"
	"github.com/flotamx/flotaweb/pkg/core/usecase/vehiclesuc"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Filter values meaning no filter at all, as the dashboard dropdowns
// send them.
const (
	allBranches = "Todas"
	allTypes    = "Todos"
)

type listQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
	Branch string `form:"sucursal"`
	Type   string `form:"tipo"`
}

func (q *listQuery) branchCode() string {
	if q.Branch == allBranches {
		return ""
	}
	return q.Branch
}

func (q *listQuery) typeName() string {
	if q.Type == allTypes {
		return ""
	}
	return q.Type
}

func (rs *resource) DserListQuery(c *gin.Context) *listQuery {
	q := &listQuery{}
	if ok := serdser.Bind(c, q, binding.Query); !ok {
		return nil
	}
	return q
}

// DserVehicleForm reads the vehicle submission form. The
// curpConductor field is three-state like the drivers form's
// vehiculoId, so it is read with presence detection.
func (rs *resource) DserVehicleForm(c *gin.Context) *vehiclesuc.Request {
	badReq := func(msg string) *vehiclesuc.Request {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": msg,
		})
		return nil
	}
	typeID, err := strconv.ParseInt(c.PostForm("idTipoVehiculo"), 10, 64)
	if err != nil {
		return badReq("El tipo de vehículo es obligatorio.")
	}
	status, err := model.ParseVehicleStatus(c.PostForm("estado"))
	if err != nil {
		return badReq("El estado de la unidad no es válido.")
	}
	var volume float64
	if raw := c.PostForm("volumenCarga"); raw != "" {
		volume, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return badReq("El volumen de carga no es válido.")
		}
	}
	axles, tires := 2, 4
	if raw := c.PostForm("ejes"); raw != "" {
		axles, err = strconv.Atoi(raw)
		if err != nil {
			return badReq("El número de ejes no es válido.")
		}
	}
	if raw := c.PostForm("llantas"); raw != "" {
		tires, err = strconv.Atoi(raw)
		if err != nil {
			return badReq("El número de llantas no es válido.")
		}
	}
	rawDriver, present := c.GetPostForm("curpConductor")
	return &vehiclesuc.Request{
		Plate:            c.PostForm("placas"),
		RegistrationCard: c.PostForm("tarjetaCirculacion"),
		TypeID:           typeID,
		BranchCode:       c.PostForm("claveOficina"),
		Status:           status,
		CargoVolume:      volume,
		Axles:            axles,
		Tires:            tires,
		Driver:           model.ParseDriverChoice(rawDriver, present),
	}
}

type branchDTO struct {
	ClaveCuo        string `json:"claveCuo"`
	NombreCuo       string `json:"nombreCuo"`
	NombreEntidad   string `json:"nombreEntidad"`
	NombreMunicipio string `json:"nombreMunicipio"`
}

type driverRefDTO struct {
	ID             int64  `json:"id"`
	NombreCompleto string `json:"nombreCompleto"`
	Curp           string `json:"curp"`
	Telefono       string `json:"telefono"`
	Correo         string `json:"correo"`
	Disponibilidad bool   `json:"disponibilidad"`
}

type driverNameDTO struct {
	NombreCompleto string `json:"nombreCompleto"`
}

type vehicleRowDTO struct {
	ID           int64          `json:"id"`
	Placas       string         `json:"placas"`
	TipoVehiculo string         `json:"tipoVehiculo"`
	CapacidadKg  float64        `json:"capacidadKg"`
	Estado       string         `json:"estado"`
	Conductor    *driverNameDTO `json:"conductor"`
	Sucursal     branchDTO      `json:"sucursal"`
}

type paginationDTO struct {
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
}

type vehiclesPageDTO struct {
	Data       []vehicleRowDTO `json:"data"`
	Pagination paginationDTO   `json:"pagination"`
}

func SerVehiclesPage(rows []model.VehicleSummary, pg model.Pagination) vehiclesPageDTO {
	data := make([]vehicleRowDTO, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		var driver *driverNameDTO
		if r.DriverName != "" {
			driver = &driverNameDTO{NombreCompleto: r.DriverName}
		}
		data = append(data, vehicleRowDTO{
			ID:           r.ID,
			Placas:       r.Plate,
			TipoVehiculo: r.TypeName,
			CapacidadKg:  r.CapacityKg,
			Estado:       r.Status.String(),
			Conductor:    driver,
			Sucursal: branchDTO{
				ClaveCuo:        r.Branch.Code,
				NombreCuo:       r.Branch.Name,
				NombreEntidad:   r.Branch.Entity,
				NombreMunicipio: r.Branch.Municipality,
			},
		})
	}
	return vehiclesPageDTO{
		Data: data,
		Pagination: paginationDTO{
			Total:       pg.Total,
			TotalPages:  pg.TotalPages,
			CurrentPage: pg.CurrentPage,
			Limit:       pg.Limit,
		},
	}
}

type vehicleWithDriverDTO struct {
	ID           int64         `json:"id"`
	Placas       string        `json:"placas"`
	TipoVehiculo string        `json:"tipoVehiculo"`
	Estado       string        `json:"estado"`
	Conductor    *driverRefDTO `json:"conductor"`
	Sucursal     branchDTO     `json:"sucursal"`
}

func SerVehiclesWithDrivers(rows []model.VehicleWithDriver) []vehicleWithDriverDTO {
	out := make([]vehicleWithDriverDTO, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		var driver *driverRefDTO
		if r.Driver != nil {
			driver = &driverRefDTO{
				ID:             r.Driver.ID,
				NombreCompleto: r.Driver.FullName,
				Curp:           r.Driver.CURP,
				Telefono:       r.Driver.Phone,
				Correo:         r.Driver.Email,
				Disponibilidad: r.Driver.Available,
			}
		}
		out = append(out, vehicleWithDriverDTO{
			ID:           r.ID,
			Placas:       r.Plate,
			TipoVehiculo: r.TypeName,
			Estado:       r.Status.String(),
			Conductor:    driver,
			Sucursal: branchDTO{
				ClaveCuo:        r.Branch.Code,
				NombreCuo:       r.Branch.Name,
				NombreEntidad:   r.Branch.Entity,
				NombreMunicipio: r.Branch.Municipality,
			},
		})
	}
	return out
}
