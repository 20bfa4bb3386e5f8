// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vehiclesrp realizes the repo.Vehicles repository on a
// PostgreSQL database, mapping the unidades table. Query functions
// are generic over the postgres.Queryer type set, so each of them can
// run on a connection or inside a transaction alike.
package vehiclesrp

import (
	"context"

	"github.com/flotamx/flotaweb/pkg/adapter/db/postgres"
	"github.com/flotamx/flotaweb/pkg/core/model"
	"github.com/flotamx/flotaweb/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (vehicles *Repo) Conn(c repo.Conn) repo.VehiclesConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, v *model.Vehicle) error {
	return Create(ctx, cq.Conn, v)
}

func (cq connQueryer) Update(ctx context.Context, v *model.Vehicle) error {
	return Update(ctx, cq.Conn, v)
}

func (cq connQueryer) FindByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	return FindByID(ctx, cq.Conn, id)
}

func (cq connQueryer) Available(ctx context.Context, branchCode, driverCURP string) ([]model.AvailableVehicle, error) {
	return Available(ctx, cq.Conn, branchCode, driverCURP)
}

func (cq connQueryer) UnassignDriver(ctx context.Context, curp string) (int64, error) {
	return UnassignDriver(ctx, cq.Conn, curp)
}

func (cq connQueryer) ClaimForDriver(ctx context.Context, vehicleID int64, curp string) (bool, error) {
	return ClaimForDriver(ctx, cq.Conn, vehicleID, curp)
}

func (cq connQueryer) SetDriver(ctx context.Context, vehicleID int64, curp string) error {
	return SetDriver(ctx, cq.Conn, vehicleID, curp)
}

func (cq connQueryer) List(ctx context.Context, q repo.VehiclesListQuery) ([]model.VehicleSummary, int64, error) {
	return List(ctx, cq.Conn, q)
}

func (cq connQueryer) ListWithDrivers(ctx context.Context) ([]model.VehicleWithDriver, error) {
	return ListWithDrivers(ctx, cq.Conn)
}

type txQueryer struct {
	*postgres.Tx
}

func (vehicles *Repo) Tx(tx repo.Tx) repo.VehiclesTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, v *model.Vehicle) error {
	return Create(ctx, tq.Tx, v)
}

func (tq txQueryer) Update(ctx context.Context, v *model.Vehicle) error {
	return Update(ctx, tq.Tx, v)
}

func (tq txQueryer) FindByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	return FindByID(ctx, tq.Tx, id)
}

func (tq txQueryer) Available(ctx context.Context, branchCode, driverCURP string) ([]model.AvailableVehicle, error) {
	return Available(ctx, tq.Tx, branchCode, driverCURP)
}

func (tq txQueryer) UnassignDriver(ctx context.Context, curp string) (int64, error) {
	return UnassignDriver(ctx, tq.Tx, curp)
}

func (tq txQueryer) ClaimForDriver(ctx context.Context, vehicleID int64, curp string) (bool, error) {
	return ClaimForDriver(ctx, tq.Tx, vehicleID, curp)
}

func (tq txQueryer) SetDriver(ctx context.Context, vehicleID int64, curp string) error {
	return SetDriver(ctx, tq.Tx, vehicleID, curp)
}

func (tq txQueryer) List(ctx context.Context, q repo.VehiclesListQuery) ([]model.VehicleSummary, int64, error) {
	return List(ctx, tq.Tx, q)
}

func (tq txQueryer) ListWithDrivers(ctx context.Context) ([]model.VehicleWithDriver, error) {
	return ListWithDrivers(ctx, tq.Tx)
}
