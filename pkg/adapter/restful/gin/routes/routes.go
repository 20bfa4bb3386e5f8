// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/flotamx/flotaweb/pkg/adapter/config"
	"github.com/flotamx/flotaweb/pkg/adapter/db/postgres/driversrp"
	"github.com/flotamx/flotaweb/pkg/adapter/db/postgres/officesrp"
	"github.com/flotamx/flotaweb/pkg/adapter/db/postgres/vehiclesrp"
	"github.com/flotamx/flotaweb/pkg/adapter/restful/gin/driversrs"
	"github.com/flotamx/flotaweb/pkg/adapter/restful/gin/officesrs"
	"github.com/flotamx/flotaweb/pkg/adapter/restful/gin/vehiclesrs"
	"github.com/flotamx/flotaweb/pkg/core/repo"
	"github.com/flotamx/flotaweb/pkg/core/usecase/officesuc"
	"github.com/gin-gonic/gin"
)

// Register instantiates the repository and use case instances based
// on the c configuration settings. The p connections pool is passed
// to the use case instances, so they may acquire/release connections
// and transactions on demand; these will be passed to the
// repositories in order to run the relevant queries on them. Each use
// case package is named like driversuc and each repository package is
// named like driversrp. Register then instantiates a series of
// "resource" structs, from packages which are named like driversrs,
// adapting the use case interfaces with the REST APIs, and registers
// them as request handlers on the e gin-gonic engine instance under
// the /api/flotaweb/v1 prefix.
func Register(e *gin.Engine, p repo.Pool, c *config.Config) error {
	driversRepo := driversrp.New()
	vehiclesRepo := vehiclesrp.New()
	officesRepo := officesrp.New()

	drivers, err := c.NewDriversUseCase(p, driversRepo, vehiclesRepo)
	if err != nil {
		return fmt.Errorf("creating drivers use case: %w", err)
	}
	vehicles, err := c.NewVehiclesUseCase(p, vehiclesRepo)
	if err != nil {
		return fmt.Errorf("creating vehicles use case: %w", err)
	}
	offices := officesuc.New(p, officesRepo)

	r := e.Group("/api/flotaweb/v1")
	driversrs.Register(r, drivers)
	vehiclesrs.Register(r, vehicles)
	officesrs.Register(r, offices)
	return nil
}
