// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vehiclesrs realizes the vehicles resource, adapting the
// vehicles catalog and management REST APIs to the vehicles use case.
package vehiclesrs

import (
	"net/http"
	"strconv"

	"github.com/flotamx/flotaweb/pkg/adapter/restful/gin/serdser"
	"github.com/flotamx/flotaweb/pkg/core/usecase/vehiclesuc"
	"github.com/gin-gonic/gin"
)

type resource struct {
	vehicles *vehiclesuc.UseCase
}

// Register instantiates a resource adapting the vehicles use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/flotaweb/v1/vehicles
//     in order to list the vehicles catalog with pagination.
//  2. GET request to /api/flotaweb/v1/vehicles/with-drivers
//     in order to list all vehicles with their assigned drivers.
//  3. POST request to /api/flotaweb/v1/vehicles
//     in order to register a vehicle, optionally linking a driver.
//  4. PATCH request to /api/flotaweb/v1/vehicles/:vid
//     in order to update a vehicle and reconcile its driver link.
func Register(r *gin.RouterGroup, vehicles *vehiclesuc.UseCase) {
	rs := &resource{vehicles: vehicles}
	r.GET("vehicles", rs.ListVehicles)
	r.GET("vehicles/with-drivers", rs.ListVehiclesWithDrivers)
	r.POST("vehicles", rs.CreateVehicle)
	r.PATCH("vehicles/:vid", rs.UpdateVehicle)
}

func (rs *resource) ListVehicles(c *gin.Context) {
	q := rs.DserListQuery(c)
	if q == nil {
		return
	}
	rows, pg := rs.vehicles.List(
		c, q.Page, q.Limit, q.Search, q.branchCode(), q.typeName(),
	)
	c.JSON(http.StatusOK, SerVehiclesPage(rows, pg))
}

func (rs *resource) ListVehiclesWithDrivers(c *gin.Context) {
	rows := rs.vehicles.ListWithDrivers(c)
	c.JSON(http.StatusOK, SerVehiclesWithDrivers(rows))
}

func (rs *resource) CreateVehicle(c *gin.Context) {
	req := rs.DserVehicleForm(c)
	if req == nil {
		return
	}
	if err := rs.vehicles.Create(c, *req); err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.SerOK(c)
}

func (rs *resource) UpdateVehicle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("vid"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "El identificador de la unidad no es válido.",
		})
		return
	}
	req := rs.DserVehicleForm(c)
	if req == nil {
		return
	}
	if err := rs.vehicles.Update(c, id, *req); err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.SerOK(c)
}
