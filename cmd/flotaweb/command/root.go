// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the fleet
// dashboard backend. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command groups the database management actions; currently only
// the init action exists, creating the fleet tables of a fresh
// database.
//
//	./flotaweb [-c /path/of/main/config.yaml]     # start web server
//	./flotaweb db init [-c /path/of/main/config.yaml]
package command

import (
	"context"
	"fmt"
	"os"

	"github.com/flotamx/flotaweb/pkg/adapter/config"
	"github.com/flotamx/flotaweb/pkg/adapter/restful/gin"
	"github.com/flotamx/flotaweb/pkg/adapter/restful/gin/routes"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "flotaweb",
	Short: "Backend of the Flota MX logistics admin dashboard",
	Long: `Backend of the Flota MX logistics admin dashboard.
It serves the REST APIs behind the drivers, vehicles, and branch
offices management pages. Its core responsibility is keeping the
driver-vehicle assignment consistent: a vehicle row references the
assigned driver by CURP and each driver may hold at most one vehicle,
so every assignment change reconciles the links inside one database
transaction.`,
	RunE: startWebServer,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	var e *gin.Engine = c.Gin.NewEngine()
	if err = routes.Register(e, p, c); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	if err = e.Run(c.Gin.ListenAddresses()...); err != nil {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default
// value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}
