// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vehiclesuc contains the vehicles UseCase: creating and
// updating vehicles, the paginated catalog, and the
// vehicles-with-drivers listing. A vehicle edit may also pick the
// assigned driver; since the business rule is at most one vehicle per
// driver, linking a driver from this entry point first unlinks that
// driver's other vehicles, inside the same transaction as the vehicle
// row write.
package vehiclesuc

import (
	"context"
	"fmt"

	"github.com/flotamx/flotaweb/pkg/core/log"
	"github.com/flotamx/flotaweb/pkg/core/model"
	"github.com/flotamx/flotaweb/pkg/core/repo"
)

// UseCase represents the vehicles use case. It holds a database
// connection pool and the vehicles repository instance (to be guided
// with connections or transactions from that pool).
type UseCase struct {
	pool       repo.Pool
	vehiclesrp repo.Vehicles

	defaultPageSize int
}

// maxPageSize bounds the limit parameter of listings.
const maxPageSize = 100

// New instantiates a vehicles use case in the same parameter style as
// driversuc.New.
func New(p repo.Pool, v repo.Vehicles, opts ...Option) (*UseCase, error) {
	uc := &UseCase{pool: p, vehiclesrp: v}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.defaultPageSize == 0 {
		uc.defaultPageSize = 10
	}
	return uc, nil
}

// Create use case registers a new vehicle. When the request picks a
// driver, that driver's other vehicles are unlinked first so the
// at-most-one rule keeps holding; both writes share one transaction.
func (uc *UseCase) Create(ctx context.Context, req Request) error {
	if err := req.Validate(); err != nil {
		return err
	}
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			vq := uc.vehiclesrp.Tx(tx)
			v := req.vehicle()
			if curp, ok := req.Driver.Assignment(); ok {
				if _, err := vq.UnassignDriver(ctx, curp); err != nil {
					return fmt.Errorf(
						"unlinking vehicles of %q: %w", curp, err,
					)
				}
				v.DriverCURP = curp
			}
			if err := vq.Create(ctx, v); err != nil {
				return fmt.Errorf("inserting vehicle: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return uc.explain(ctx, err, req, msgCreateFallback)
	}
	return nil
}

// Update use case modifies the id vehicle's fields and, when the
// request carries a driver instruction, reconciles the link:
//
//   - assign the already linked driver: no link write;
//   - assign a different driver: unlink that driver's other vehicles,
//     then point this vehicle at the driver (overwriting whatever
//     driver it had - the admin editing the vehicle owns its row);
//   - clear: detach this vehicle only;
//   - keep (field omitted): leave the link untouched.
func (uc *UseCase) Update(ctx context.Context, id int64, req Request) error {
	if err := req.Validate(); err != nil {
		return err
	}
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			vq := uc.vehiclesrp.Tx(tx)
			cur, err := vq.FindByID(ctx, id)
			if err != nil {
				return fmt.Errorf("loading vehicle %d: %w", id, err)
			}
			v := req.vehicle()
			v.ID = id
			v.RegisteredAt = cur.RegisteredAt
			if err := vq.Update(ctx, v); err != nil {
				return fmt.Errorf("updating vehicle %d: %w", id, err)
			}
			if curp, ok := req.Driver.Assignment(); ok {
				if cur.DriverCURP == curp {
					return nil // already linked, idempotent
				}
				if _, err := vq.UnassignDriver(ctx, curp); err != nil {
					return fmt.Errorf(
						"unlinking vehicles of %q: %w", curp, err,
					)
				}
				if err := vq.SetDriver(ctx, id, curp); err != nil {
					return fmt.Errorf("linking driver %q: %w", curp, err)
				}
				return nil
			}
			if req.Driver.IsClear() && cur.DriverCURP != "" {
				if err := vq.SetDriver(ctx, id, ""); err != nil {
					return fmt.Errorf("detaching vehicle %d: %w", id, err)
				}
			}
			return nil
		})
	})
	if err != nil {
		return uc.explain(ctx, err, req, msgUpdateFallback)
	}
	return nil
}

// List returns one page of the vehicles catalog, filtered by search
// text, branch code, and type name. Like the other dashboard reads it
// is fail-soft: errors are logged and an empty page is returned.
func (uc *UseCase) List(
	ctx context.Context, page, limit int, search, branchCode, typeName string,
) ([]model.VehicleSummary, model.Pagination) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = uc.defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	var rows []model.VehicleSummary
	var total int64
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		var err error
		rows, total, err = uc.vehiclesrp.Conn(c).List(ctx, repo.VehiclesListQuery{
			Search:     search,
			BranchCode: branchCode,
			TypeName:   typeName,
			Offset:     (page - 1) * limit,
			Limit:      limit,
		})
		return err
	})
	if err != nil {
		log.Error(ctx, "listing vehicles", log.Err("error", err))
		return nil, model.NewPagination(0, 1, limit)
	}
	return rows, model.NewPagination(total, page, limit)
}

// ListWithDrivers returns the complete vehicles catalog annotated
// with each vehicle's assigned driver. Fail-soft.
func (uc *UseCase) ListWithDrivers(
	ctx context.Context,
) []model.VehicleWithDriver {
	var rows []model.VehicleWithDriver
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		var err error
		rows, err = uc.vehiclesrp.Conn(c).ListWithDrivers(ctx)
		return err
	})
	if err != nil {
		log.Error(ctx, "listing vehicles with drivers",
			log.Err("error", err))
		return nil
	}
	return rows
}
