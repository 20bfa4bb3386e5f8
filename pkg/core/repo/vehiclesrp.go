// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/flotamx/flotaweb/pkg/core/model"
)

// VehiclesListQuery carries the filters of the paginated vehicles
// listing. Search is matched case-insensitively as a substring of the
// plate, the assigned driver's name, and the office name; empty
// BranchCode/TypeName mean all branches/types.
type VehiclesListQuery struct {
	Search     string
	BranchCode string
	TypeName   string
	Offset     int
	Limit      int
}

type VehiclesConnQueryer interface {
	VehiclesQueryer
}

type VehiclesTxQueryer interface {
	VehiclesQueryer
}

// VehiclesQueryer exposes the vehicles table queries, including the
// link maintenance primitives used by the assignment reconciliation.
type VehiclesQueryer interface {
	// Create inserts v and fills in its generated ID.
	Create(ctx context.Context, v *model.Vehicle) error

	// Update persists all fields of v except DriverCURP, matching the
	// row by v.ID. A missing row yields a cerr.NotFound error.
	Update(ctx context.Context, v *model.Vehicle) error

	// FindByID loads the id vehicle.
	// A missing row yields a cerr.NotFound error.
	FindByID(ctx context.Context, id int64) (*model.Vehicle, error)

	// Available lists the vehicles of the branchCode branch which are
	// unassigned or already linked to the driverCURP driver (pass an
	// empty driverCURP to list unassigned vehicles only), annotated
	// with their type name and ordered by plate.
	Available(ctx context.Context, branchCode, driverCURP string) (
		[]model.AvailableVehicle, error,
	)

	// UnassignDriver clears the driver reference of every vehicle
	// currently linked to the curp driver and returns the number of
	// unlinked rows.
	UnassignDriver(ctx context.Context, curp string) (int64, error)

	// ClaimForDriver links the vehicleID vehicle to the curp driver,
	// but only while the vehicle is unassigned or already linked to
	// that same driver. It returns false when the vehicle was claimed
	// by someone else in the meantime (zero rows affected) and a
	// cerr.NotFound error when the vehicle does not exist.
	ClaimForDriver(ctx context.Context, vehicleID int64, curp string) (
		bool, error,
	)

	// SetDriver overwrites the driver reference of the vehicleID
	// vehicle with curp, clearing it when curp is empty. Unlike
	// ClaimForDriver this write is unconditional: the vehicle entry
	// point owns its row and may reassign it away from another
	// driver. A missing vehicle yields a cerr.NotFound error.
	SetDriver(ctx context.Context, vehicleID int64, curp string) error

	// List returns one page of vehicle summaries plus the total
	// number of rows matching the query filters.
	List(ctx context.Context, q VehiclesListQuery) (
		[]model.VehicleSummary, int64, error,
	)

	// ListWithDrivers returns the complete vehicles catalog with the
	// assigned driver of each vehicle (when any), ordered by ID.
	ListWithDrivers(ctx context.Context) (
		[]model.VehicleWithDriver, error,
	)
}

type Vehicles interface {
	Conn(Conn) VehiclesConnQueryer
	Tx(Tx) VehiclesTxQueryer
}
