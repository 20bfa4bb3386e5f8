// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// Structs in this package carry no persistence tags; the corresponding
// table-mapped structs live in the pkg/adapter/db/postgres/...rp
// packages which may depend on the ORM framework.
package model

import "time"

// Driver models a driver (conductor) of the logistics fleet.
// The CURP is the natural key of a driver: vehicles reference their
// assigned driver by CURP, not by the surrogate ID, so a CURP change
// during an update must be propagated to the vehicle links.
// CURP and RFC are each unique among drivers.
type Driver struct {
	ID           int64
	FullName     string
	CURP         string // government identifier, natural key
	RFC          string // fiscal key
	License      string
	LicenseValid bool
	Phone        string
	Email        string
	BranchCode   string // CUO code of the branch office
	Available    bool
	RegisteredAt time.Time
}

// BranchRef is the subset of branch office fields which listings
// attach to their rows.
type BranchRef struct {
	Code         string
	Name         string
	Entity       string
	Municipality string
}

// VehicleRef is the subset of vehicle fields which driver listings
// attach to their rows.
type VehicleRef struct {
	ID       int64
	Plate    string
	TypeName string
}

// DriverSummary is one row of the paginated drivers listing: the
// driver itself plus its branch office and currently linked vehicles.
// Although the intended relationship is at most one vehicle per
// driver, the schema permits more, so Vehicles is a slice.
type DriverSummary struct {
	Driver
	Branch   BranchRef
	Vehicles []VehicleRef
}
