// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/flotamx/flotaweb/pkg/core/model"
)

// DriversListQuery carries the filters of the paginated drivers
// listing. Search is matched case-insensitively as a substring of the
// name, CURP, RFC, and email columns; an empty BranchCode means all
// branches.
type DriversListQuery struct {
	Search     string
	BranchCode string
	Offset     int
	Limit      int
}

type DriversConnQueryer interface {
	DriversQueryer
}

type DriversTxQueryer interface {
	DriversQueryer
}

// DriversQueryer exposes the drivers table queries. Create and Update
// raise cerr.DuplicateError/cerr.ForeignKeyError (wrapped in a
// cerr.Error) on constraint violations, as mapped by the store
// boundary.
type DriversQueryer interface {
	// Create inserts d and fills in its generated ID.
	Create(ctx context.Context, d *model.Driver) error

	// Update persists all fields of d, matching the row by d.ID.
	// A missing row yields a cerr.NotFound error.
	Update(ctx context.Context, d *model.Driver) error

	// FindWithVehicles loads the id driver together with the vehicles
	// currently linked to its CURP. A missing driver yields a
	// cerr.NotFound error.
	FindWithVehicles(ctx context.Context, id int64) (
		*model.Driver, []model.Vehicle, error,
	)

	// List returns one page of driver summaries plus the total number
	// of rows matching the query filters.
	List(ctx context.Context, q DriversListQuery) (
		[]model.DriverSummary, int64, error,
	)
}

type Drivers interface {
	Conn(Conn) DriversConnQueryer
	Tx(Tx) DriversTxQueryer
}
