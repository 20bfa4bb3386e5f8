// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package officesuc contains the read-only branch offices use case:
// the active-offices catalog feeding the dashboard dropdowns, the
// paginated offices listing, and the vehicle types catalog. All reads
// are fail-soft like the rest of the dashboard queries.
package officesuc

import (
	"context"

	"github.com/flotamx/flotaweb/pkg/core/log"
	"github.com/flotamx/flotaweb/pkg/core/model"
	"github.com/flotamx/flotaweb/pkg/core/repo"
)

// UseCase represents the offices use case, holding the connection
// pool and the offices repository instance.
type UseCase struct {
	pool      repo.Pool
	officesrp repo.Offices
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// New instantiates an offices use case.
func New(p repo.Pool, o repo.Offices) *UseCase {
	return &UseCase{pool: p, officesrp: o}
}

// Active returns the active branch offices ordered by name.
func (uc *UseCase) Active(ctx context.Context) []model.BranchRef {
	var out []model.BranchRef
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		var err error
		out, err = uc.officesrp.Conn(c).ListActive(ctx)
		return err
	})
	if err != nil {
		log.Error(ctx, "listing active offices", log.Err("error", err))
		return nil
	}
	return out
}

// List returns one page of the offices listing filtered by the search
// text.
func (uc *UseCase) List(
	ctx context.Context, page, limit int, search string,
) ([]model.BranchOffice, model.Pagination) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	var rows []model.BranchOffice
	var total int64
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		var err error
		rows, total, err = uc.officesrp.Conn(c).List(ctx, repo.OfficesListQuery{
			Search: search,
			Offset: (page - 1) * limit,
			Limit:  limit,
		})
		return err
	})
	if err != nil {
		log.Error(ctx, "listing offices", log.Err("error", err))
		return nil, model.NewPagination(0, 1, limit)
	}
	return rows, model.NewPagination(total, page, limit)
}

// VehicleTypes returns the vehicle types catalog ordered by name.
func (uc *UseCase) VehicleTypes(ctx context.Context) []model.VehicleType {
	var out []model.VehicleType
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		var err error
		out, err = uc.officesrp.Conn(c).VehicleTypes(ctx)
		return err
	})
	if err != nil {
		log.Error(ctx, "listing vehicle types", log.Err("error", err))
		return nil
	}
	return out
}
