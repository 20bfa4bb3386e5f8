// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package officesrs realizes the branch offices resource, adapting
// the offices and vehicle types catalog REST APIs to the offices use
// case.
package officesrs

import (
	"net/http"

	"github.com/flotamx/flotaweb/pkg/adapter/restful/gin/serdser"
	"github.com/flotamx/flotaweb/pkg/core/usecase/officesuc"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type resource struct {
	offices *officesuc.UseCase
}

// Register instantiates a resource adapting the offices use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/flotaweb/v1/offices
//     in order to list branch offices with pagination.
//  2. GET request to /api/flotaweb/v1/offices/active
//     in order to list the active offices for dropdowns.
//  3. GET request to /api/flotaweb/v1/vehicle-types
//     in order to list the vehicle types catalog.
func Register(r *gin.RouterGroup, offices *officesuc.UseCase) {
	rs := &resource{offices: offices}
	r.GET("offices", rs.ListOffices)
	r.GET("offices/active", rs.ListActiveOffices)
	r.GET("vehicle-types", rs.ListVehicleTypes)
}

type listQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
}

func (rs *resource) ListOffices(c *gin.Context) {
	q := &listQuery{}
	if ok := serdser.Bind(c, q, binding.Query); !ok {
		return
	}
	rows, pg := rs.offices.List(c, q.Page, q.Limit, q.Search)
	c.JSON(http.StatusOK, SerOfficesPage(rows, pg))
}

func (rs *resource) ListActiveOffices(c *gin.Context) {
	rows := rs.offices.Active(c)
	c.JSON(http.StatusOK, SerActiveOffices(rows))
}

func (rs *resource) ListVehicleTypes(c *gin.Context) {
	rows := rs.offices.VehicleTypes(c)
	c.JSON(http.StatusOK, SerVehicleTypes(rows))
}
