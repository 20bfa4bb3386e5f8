// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config loads the YAML configuration file of the dashboard
// backend and knows how to turn its settings into the concrete
// adapter and use case instances: a database connection pool, a
// gin-gonic engine, and the configured use case objects. It is
// preferred to implement Config with primitive fields or other
// structs which are defined locally, not models or structs which are
// defined in lower layers, so the configuration file format can be
// kept intact while other layers change freely.
package config

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/flotamx/flotaweb/pkg/adapter/db/postgres"
	"github.com/flotamx/flotaweb/pkg/adapter/restful/gin"
	"github.com/flotamx/flotaweb/pkg/core/repo"
	"github.com/flotamx/flotaweb/pkg/core/usecase/driversuc"
	"github.com/flotamx/flotaweb/pkg/core/usecase/vehiclesuc"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Usecases Usecases // Supported use cases configuration settings
}

// Database contains the database related configuration settings.
type Database struct {
	Host string `validate:"required"` // DBMS server name or IP address
	Port int    `validate:"required,min=1,max=65535"`
	Name string `validate:"required"` // database name, like flotaweb
	User string `validate:"required"` // database role name

	// Password may be left empty in the configuration file and
	// provided by the PGPASSWORD environment variable instead, so the
	// file can be committed without credentials.
	Password string `yaml:"password,omitempty"`
}

// Gin contains the gin-gonic related configuration settings.
type Gin struct {
	Logger   bool // Whether to register the gin.Logger() middleware
	Recovery bool // Whether to register the gin.Recovery() middleware

	// Address is the host:port to listen on. Leaving it empty falls
	// back to the gin-gonic default (the PORT environment variable or
	// the 8080 port).
	Address string `yaml:"address,omitempty" validate:"omitempty,hostname_port"`
}

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Drivers  Drivers  // drivers use cases related settings
	Vehicles Vehicles // vehicles use cases related settings
}

// Drivers contains the configuration settings for the drivers use
// cases. A zero PageSize leaves the use cases layer default in place.
type Drivers struct {
	PageSize int `yaml:"page-size" validate:"omitempty,min=1,max=100"`
}

// Vehicles contains the configuration settings for the vehicles use
// cases.
type Vehicles struct {
	PageSize int `yaml:"page-size" validate:"omitempty,min=1,max=100"`
}

// Load reads the path file and unmarshals it as YAML into a Config
// instance. Extra items in the file are ignored and missing items
// take their zero values. Thereafter, the loaded Config is validated
// and normalized in order to ensure that the provided settings are
// acceptable. Environment variable overrides (only PGPASSWORD for
// now) are applied here too, so every execution observes a fixed
// configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q file: %w", path, err)
	}
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It can also modify
// settings in order to normalize them or replace some zero values
// with their expected default values (if any).
func (c *Config) ValidateAndNormalize() error {
	if c.Database.Password == "" {
		c.Database.Password = os.Getenv("PGPASSWORD")
	}
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("struct validation: %w", err)
	}
	return nil
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the c settings.
func (c *Config) ConnectionPool(ctx context.Context) (*postgres.Pool, error) {
	p, err := postgres.NewPool(ctx, c.Database.ConnectionURL())
	if err != nil {
		return nil, fmt.Errorf(
			"connecting to %s:%d/%s: %w",
			c.Database.Host, c.Database.Port, c.Database.Name, err,
		)
	}
	return p, nil
}

// ConnectionURL returns the database connection URL embedding the
// host, port, role name, database name, and password value, with the
// postgresql scheme.
func (d Database) ConnectionURL() string {
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String()
}

// NewEngine instantiates a new gin-gonic engine instance based on the
// g settings. The request correlation middleware is registered
// unconditionally.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 3)
	if g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	middlewares = append(middlewares, gin.RequestID())
	return gin.New(middlewares...)
}

// ListenAddresses returns the configured listen address as the
// variadic argument of gin's Engine.Run, empty when no address was
// configured so the engine applies its own default.
func (g Gin) ListenAddresses() []string {
	if g.Address == "" {
		return nil
	}
	return []string{g.Address}
}

// NewDriversUseCase instantiates a new drivers use case based on the
// settings in the c struct.
func (c *Config) NewDriversUseCase(
	p repo.Pool, d repo.Drivers, v repo.Vehicles,
) (*driversuc.UseCase, error) {
	opts := make([]driversuc.Option, 0, 1)
	if ps := c.Usecases.Drivers.PageSize; ps != 0 {
		opts = append(opts, driversuc.WithDefaultPageSize(ps))
	}
	return driversuc.New(p, d, v, opts...)
}

// NewVehiclesUseCase instantiates a new vehicles use case based on
// the settings in the c struct.
func (c *Config) NewVehiclesUseCase(
	p repo.Pool, v repo.Vehicles,
) (*vehiclesuc.UseCase, error) {
	opts := make([]vehiclesuc.Option, 0, 1)
	if ps := c.Usecases.Vehicles.PageSize; ps != 0 {
		opts = append(opts, vehiclesuc.WithDefaultPageSize(ps))
	}
	return vehiclesuc.New(p, v, opts...)
}
