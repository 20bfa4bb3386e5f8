// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package driversrp realizes the repo.Drivers repository on a
// PostgreSQL database, mapping the conductores table.
package driversrp

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

func (drivers *Repo) Conn(c repo.Conn) repo.DriversConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, d *model.Driver) error {
	return Create(ctx, cq.Conn, d)
}

func (cq connQueryer) Update(ctx context.Context, d *model.Driver) error {
	return Update(ctx, cq.Conn, d)
}

func (cq connQueryer) FindWithVehicles(ctx context.Context, id int64) (*model.Driver, []model.Vehicle, error) {
	return FindWithVehicles(ctx, cq.Conn, id)
}

func (cq connQueryer) List(ctx context.Context, q repo.DriversListQuery) ([]model.DriverSummary, int64, error) {
	return List(ctx, cq.Conn, q)
}

type txQueryer struct {
	*postgres.Tx
}

func (drivers *Repo) Tx(tx repo.Tx) repo.DriversTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, d *model.Driver) error {
	return Create(ctx, tq.Tx, d)
}

func (tq txQueryer) Update(ctx context.Context, d *model.Driver) error {
	return Update(ctx, tq.Tx, d)
}

func (tq txQueryer) FindWithVehicles(ctx context.Context, id int64) (*model.Driver, []model.Vehicle, error) {
	return FindWithVehicles(ctx, tq.Tx, id)
}

func (tq txQueryer) List(ctx context.Context, q repo.DriversListQuery) ([]model.DriverSummary, int64, error) {
	return List(ctx, tq.Tx, q)
}
