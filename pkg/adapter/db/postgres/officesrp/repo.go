// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package officesrp realizes the repo.Offices repository on a
// PostgreSQL database, mapping the oficinas and tipos_vehiculo
// reference tables.
package officesrp

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

func (offices *Repo) Conn(c repo.Conn) repo.OfficesConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) ListActive(ctx context.Context) ([]model.BranchRef, error) {
	return ListActive(ctx, cq.Conn)
}

func (cq connQueryer) List(ctx context.Context, q repo.OfficesListQuery) ([]model.BranchOffice, int64, error) {
	return List(ctx, cq.Conn, q)
}

func (cq connQueryer) VehicleTypes(ctx context.Context) ([]model.VehicleType, error) {
	return VehicleTypes(ctx, cq.Conn)
}

type txQueryer struct {
	*postgres.Tx
}

func (offices *Repo) Tx(tx repo.Tx) repo.OfficesTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) ListActive(ctx context.Context) ([]model.BranchRef, error) {
	return ListActive(ctx, tq.Tx)
}

func (tq txQueryer) List(ctx context.Context, q repo.OfficesListQuery) ([]model.BranchOffice, int64, error) {
	return List(ctx, tq.Tx, q)
}

func (tq txQueryer) VehicleTypes(ctx context.Context) ([]model.VehicleType, error) {
	return VehicleTypes(ctx, tq.Tx)
}
