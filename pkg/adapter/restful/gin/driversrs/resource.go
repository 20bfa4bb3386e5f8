// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package driversrs realizes the drivers resource, adapting the
// drivers management REST APIs to the drivers use case.
package driversrs

import (
	"net/http"
	"strconv"

	"github.com/flotamx/flotaweb/pkg/adapter/restful/gin/serdser"
	"github.com/flotamx/flotaweb/pkg/core/usecase/driversuc"
	"github.com/gin-gonic/gin"
)

type resource struct {
	drivers *driversuc.UseCase
}

// Register instantiates a resource adapting the drivers use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/flotaweb/v1/drivers
//     in order to list drivers with pagination and filters.
//  2. POST request to /api/flotaweb/v1/drivers
//     in order to register a driver, optionally linking a vehicle.
//  3. PATCH request to /api/flotaweb/v1/drivers/:did
//     in order to update a driver and reconcile its vehicle link.
//  4. GET request to /api/flotaweb/v1/drivers/available-vehicles
//     in order to list the vehicles offerable to a driver.
func Register(r *gin.RouterGroup, drivers *driversuc.UseCase) {
	rs := &resource{drivers: drivers}
	r.GET("drivers", rs.ListDrivers)
	r.POST("drivers", rs.CreateDriver)
	r.PATCH("drivers/:did", rs.UpdateDriver)
	r.GET("drivers/available-vehicles", rs.AvailableVehicles)
}

func (rs *resource) ListDrivers(c *gin.Context) {
	q := rs.DserListQuery(c)
	if q == nil {
		return
	}
	rows, pg := rs.drivers.List(
		c, q.Page, q.Limit, q.Search, q.branchCode(),
	)
	c.JSON(http.StatusOK, SerDriversPage(rows, pg))
}

func (rs *resource) CreateDriver(c *gin.Context) {
	req := rs.DserDriverForm(c)
	if req == nil {
		return
	}
	if err := rs.drivers.Create(c, *req); err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.SerOK(c)
}

func (rs *resource) UpdateDriver(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("did"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "El identificador del conductor no es válido.",
		})
		return
	}
	req := rs.DserDriverForm(c)
	if req == nil {
		return
	}
	if err := rs.drivers.Update(c, id, *req); err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.SerOK(c)
}

func (rs *resource) AvailableVehicles(c *gin.Context) {
	q := rs.DserAvailableQuery(c)
	if q == nil {
		return
	}
	rows := rs.drivers.AvailableVehicles(c, q.BranchCode, q.CURP)
	c.JSON(http.StatusOK, SerAvailableVehicles(rows))
}
