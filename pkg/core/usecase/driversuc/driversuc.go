// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package driversuc contains the drivers UseCase: creating and
// updating drivers (including the reconciliation of the
// driver-vehicle link), listing drivers, and answering which vehicles
// of a branch are available for assignment.
//
// The link between a driver and a vehicle is stored on the vehicle
// row as the driver's CURP. The business rule is at most one vehicle
// per driver, but nothing in the schema prevents several vehicles
// from pointing at the same CURP, so every update which touches the
// link first clears all vehicles of the driver's old CURP and then
// claims the requested vehicle under the new CURP. Both steps run in
// the same transaction as the driver row update, and the claim is
// conditional on the vehicle still being unassigned (or already
// belonging to this driver), so concurrent updates cannot silently
// steal a vehicle nor leave a half-moved link behind.
package driversuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/flotamx/flotaweb/pkg/core/cerr"
	"github.com/flotamx/flotaweb/pkg/core/log"
	"github.com/flotamx/flotaweb/pkg/core/model"
	"github.com/flotamx/flotaweb/pkg/core/repo"
)

// UseCase represents the drivers use case. It holds a database
// connection pool and the drivers and vehicles repository instances
// (to be guided with connections or transactions from that pool).
type UseCase struct {
	pool       repo.Pool
	driversrp  repo.Drivers
	vehiclesrp repo.Vehicles

	defaultPageSize int
}

// maxPageSize bounds the limit parameter of listings.
const maxPageSize = 100

// New instantiates a drivers use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error. Optional parameters are passed as
// a series of functional options.
func New(
	p repo.Pool, d repo.Drivers, v repo.Vehicles, opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, driversrp: d, vehiclesrp: v}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.defaultPageSize == 0 {
		uc.defaultPageSize = 10
	}
	return uc, nil
}

// Create use case registers a new driver and, when the request asks
// for a vehicle, links that vehicle to the new driver's CURP. The
// driver insert and the vehicle link run in one transaction: either
// the driver exists with its requested link or nothing is written.
// Returned errors always carry a user-presentable message; see
// messages.go for the translation of store violations.
func (uc *UseCase) Create(ctx context.Context, req Request) error {
	if err := req.Validate(); err != nil {
		return err
	}
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			d := req.driver()
			if err := uc.driversrp.Tx(tx).Create(ctx, d); err != nil {
				return fmt.Errorf("inserting driver: %w", err)
			}
			vid, ok := req.Vehicle.Assignment()
			if !ok {
				// no prior link can exist for a fresh driver, so
				// both "keep" and "clear" mean no vehicle write
				return nil
			}
			return uc.claim(ctx, uc.vehiclesrp.Tx(tx), vid, d.CURP)
		})
	})
	if err != nil {
		return uc.explain(ctx, err, req, msgCreateFallback)
	}
	return nil
}

// Update use case modifies the id driver's fields and reconciles the
// vehicle link according to the request's VehicleChoice:
//
//   - assign an already linked vehicle: no vehicle write at all;
//   - assign a different vehicle: unlink every vehicle of the old
//     CURP, then claim the requested one under the new CURP (the CURP
//     itself may change in the same update);
//   - clear: unlink every vehicle of the old CURP;
//   - keep (field omitted): leave the links untouched.
//
// All steps share one transaction, so a failing link step also rolls
// the driver field update back.
func (uc *UseCase) Update(ctx context.Context, id int64, req Request) error {
	if err := req.Validate(); err != nil {
		return err
	}
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			dq := uc.driversrp.Tx(tx)
			vq := uc.vehiclesrp.Tx(tx)
			cur, linked, err := dq.FindWithVehicles(ctx, id)
			if err != nil {
				return fmt.Errorf("loading driver %d: %w", id, err)
			}
			d := req.driver()
			d.ID = id
			d.RegisteredAt = cur.RegisteredAt
			if err := dq.Update(ctx, d); err != nil {
				return fmt.Errorf("updating driver %d: %w", id, err)
			}
			if vid, ok := req.Vehicle.Assignment(); ok {
				for i := range linked {
					if linked[i].ID == vid {
						return nil // already linked, idempotent
					}
				}
				if _, err := vq.UnassignDriver(ctx, cur.CURP); err != nil {
					return fmt.Errorf(
						"unlinking vehicles of %q: %w", cur.CURP, err,
					)
				}
				return uc.claim(ctx, vq, vid, d.CURP)
			}
			if req.Vehicle.IsClear() {
				if _, err := vq.UnassignDriver(ctx, cur.CURP); err != nil {
					return fmt.Errorf(
						"unlinking vehicles of %q: %w", cur.CURP, err,
					)
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

// errVehicleJustClaimed marks a conditional claim which affected zero
// rows: another request linked the vehicle first.
var errVehicleJustClaimed = errors.New("vehicle was claimed concurrently")

// errVehicleMissing marks a claim whose requested vehicle row does
// not exist at all.
var errVehicleMissing = errors.New("requested vehicle does not exist")

// claim links the vid vehicle to the curp driver, converting the
// zero-rows-affected outcome of the conditional update into
// errVehicleJustClaimed so the transaction rolls back.
func (uc *UseCase) claim(
	ctx context.Context, vq repo.VehiclesTxQueryer, vid int64, curp string,
) error {
	claimed, err := vq.ClaimForDriver(ctx, vid, curp)
	if err != nil {
		var ce *cerr.Error
		if errors.As(err, &ce) && ce.HTTPStatusCode == http.StatusNotFound {
			return errVehicleMissing
		}
		return fmt.Errorf("linking vehicle %d: %w", vid, err)
	}
	if !claimed {
		return errVehicleJustClaimed
	}
	return nil
}

// AvailableVehicles lists the vehicles of the branchCode branch which
// may be offered to the driverCURP driver: unassigned vehicles plus
// the one already linked to that driver. Pass an empty driverCURP for
// a fresh driver. The read contract is fail-soft: any error is logged
// and an empty list is returned, so the assignment dropdown degrades
// instead of failing the whole form.
func (uc *UseCase) AvailableVehicles(
	ctx context.Context, branchCode, driverCURP string,
) []model.AvailableVehicle {
	var out []model.AvailableVehicle
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		var err error
		out, err = uc.vehiclesrp.Conn(c).Available(ctx, branchCode, driverCURP)
		return err
	})
	if err != nil {
		log.Error(
			ctx, "listing available vehicles",
			slog.String("branch", branchCode), log.Err("error", err),
		)
		return nil
	}
	return out
}

// List returns one page of the drivers listing, filtered by the
// search text and branch code. Like the original dashboard queries,
// the read path is fail-soft: errors are logged and an empty page is
// returned.
func (uc *UseCase) List(
	ctx context.Context, page, limit int, search, branchCode string,
) ([]model.DriverSummary, model.Pagination) {
	page, limit = uc.clampPage(page, limit)
	var rows []model.DriverSummary
	var total int64
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		var err error
		rows, total, err = uc.driversrp.Conn(c).List(ctx, repo.DriversListQuery{
			Search:     search,
			BranchCode: branchCode,
			Offset:     (page - 1) * limit,
			Limit:      limit,
		})
		return err
	})
	if err != nil {
		log.Error(ctx, "listing drivers", log.Err("error", err))
		return nil, model.NewPagination(0, 1, limit)
	}
	return rows, model.NewPagination(total, page, limit)
}

func (uc *UseCase) clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = uc.defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
