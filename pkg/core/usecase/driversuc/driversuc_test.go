// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package driversuc_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/flotamx/flotaweb/internal/test/fakerp"
	"github.com/flotamx/flotaweb/pkg/core/cerr"
	"github.com/flotamx/flotaweb/pkg/core/model"
	"github.com/flotamx/flotaweb/pkg/core/usecase/driversuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(t *testing.T, s *fakerp.Store) *driversuc.UseCase {
	uc, err := driversuc.New(
		fakerp.NewPool(s), fakerp.NewDrivers(), fakerp.NewVehicles(),
	)
	require.NoError(t, err, "cannot instantiate drivers use case")
	return uc
}

func seedStore() *fakerp.Store {
	s := fakerp.NewStore()
	s.AddOffice(model.BranchOffice{
		ID: 1, Code: "00210", Name: "CUO Centro",
		Entity: "Jalisco", Municipality: "Guadalajara", Active: true,
	})
	s.AddType(model.VehicleType{ID: 1, Name: "Camioneta", CapacityKg: 1500})
	return s
}

func validRequest() driversuc.Request {
	return driversuc.Request{
		FullName:     "Juan Pérez García",
		CURP:         "PEGJ800101HJCRRN09",
		RFC:          "PEGJ800101AAA",
		License:      "LIC-1234",
		LicenseValid: true,
		Phone:        "3312345678",
		Email:        "juan.perez@example.mx",
		BranchCode:   "00210",
		Available:    true,
	}
}

func assertUserError(
	t *testing.T, err error, status int, message string,
) {
	t.Helper()
	var ce *cerr.Error
	require.True(t, errors.As(err, &ce), "expected a *cerr.Error: %v", err)
	assert.Equal(t, status, ce.HTTPStatusCode, "wrong status code")
	assert.Equal(t, message, ce.Err.Error(), "wrong user message")
}

func TestCreateValidation(t *testing.T) {
	for _, tc := range []struct {
		name    string
		mutate  func(*driversuc.Request)
		message string
	}{
		{
			"missing name",
			func(r *driversuc.Request) { r.FullName = "  " },
			"El nombre completo es obligatorio.",
		},
		{
			"missing curp",
			func(r *driversuc.Request) { r.CURP = "" },
			"El CURP es obligatorio.",
		},
		{
			"missing rfc",
			func(r *driversuc.Request) { r.RFC = "" },
			"El RFC es obligatorio.",
		},
		{
			"missing license",
			func(r *driversuc.Request) { r.License = "" },
			"El número de licencia es obligatorio.",
		},
		{
			"missing phone",
			func(r *driversuc.Request) { r.Phone = "" },
			"El teléfono es obligatorio.",
		},
		{
			"missing email",
			func(r *driversuc.Request) { r.Email = "" },
			"El correo electrónico es obligatorio.",
		},
		{
			"missing branch",
			func(r *driversuc.Request) { r.BranchCode = "" },
			"La sucursal es obligatoria. " +
				"Por favor selecciona una sucursal.",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := seedStore()
			uc := newUseCase(t, s)
			req := validRequest()
			tc.mutate(&req)
			err := uc.Create(context.Background(), req)
			assertUserError(t, err, http.StatusBadRequest, tc.message)
			assert.Zero(
				t, s.Counters.DriverCreates,
				"validation must precede store access",
			)
		})
	}
}

func TestCreateWithoutVehicle(t *testing.T) {
	s := seedStore()
	uc := newUseCase(t, s)
	err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	require.Len(t, s.Drivers, 1)
	assert.Zero(t, s.Counters.Claims, "no vehicle was requested")
}

func TestCreateWithVehicle(t *testing.T) {
	s := seedStore()
	vid := s.AddVehicle(model.Vehicle{
		Plate: "JAL-001-A", RegistrationCard: "TC-001", TypeID: 1,
		BranchCode: "00210", Status: model.VehicleStatusAvailable,
	})
	uc := newUseCase(t, s)
	req := validRequest()
	req.Vehicle = model.AssignVehicle(vid)
	require.NoError(t, uc.Create(context.Background(), req))
	assert.Equal(
		t, req.CURP, s.Vehicles[vid].DriverCURP,
		"vehicle must be linked to the new driver",
	)
}

func TestCreateDuplicateCURP(t *testing.T) {
	s := seedStore()
	s.AddDriver(model.Driver{
		FullName: "Otro Conductor", CURP: "PEGJ800101HJCRRN09",
		RFC: "XXXX800101BBB", BranchCode: "00210",
	})
	uc := newUseCase(t, s)
	err := uc.Create(context.Background(), validRequest())
	assertUserError(
		t, err, http.StatusConflict,
		`El CURP "PEGJ800101HJCRRN09" ya está registrado `+
			`en otro conductor.`,
	)
	assert.Len(t, s.Drivers, 1, "the insert must have been rolled back")
}

func TestCreateDuplicateRFC(t *testing.T) {
	s := seedStore()
	s.AddDriver(model.Driver{
		FullName: "Otro Conductor", CURP: "XXXX800101HJCRRN01",
		RFC: "PEGJ800101AAA", BranchCode: "00210",
	})
	uc := newUseCase(t, s)
	err := uc.Create(context.Background(), validRequest())
	assertUserError(
		t, err, http.StatusConflict,
		`El RFC "PEGJ800101AAA" ya está registrado en otro conductor.`,
	)
}

func TestCreateBranchMissing(t *testing.T) {
	s := seedStore()
	uc := newUseCase(t, s)
	req := validRequest()
	req.BranchCode = "99999"
	err := uc.Create(context.Background(), req)
	assertUserError(
		t, err, http.StatusBadRequest,
		"La sucursal seleccionada no existe. "+
			"Por favor selecciona una sucursal válida.",
	)
}

func TestCreateVehicleMissing(t *testing.T) {
	s := seedStore()
	uc := newUseCase(t, s)
	req := validRequest()
	req.Vehicle = model.AssignVehicle(12345)
	err := uc.Create(context.Background(), req)
	assertUserError(
		t, err, http.StatusBadRequest,
		"La unidad seleccionada no existe. "+
			"Por favor selecciona una unidad válida.",
	)
	assert.Empty(t, s.Drivers, "driver insert must roll back too")
}

func TestCreateVehicleAlreadyTaken(t *testing.T) {
	s := seedStore()
	vid := s.AddVehicle(model.Vehicle{
		Plate: "JAL-001-A", RegistrationCard: "TC-001", TypeID: 1,
		BranchCode: "00210", DriverCURP: "XXXX800101HJCRRN01",
		Status: model.VehicleStatusAvailable,
	})
	s.AddDriver(model.Driver{
		FullName: "Otro Conductor", CURP: "XXXX800101HJCRRN01",
		RFC: "XXXX800101BBB", BranchCode: "00210",
	})
	uc := newUseCase(t, s)
	req := validRequest()
	req.Vehicle = model.AssignVehicle(vid)
	err := uc.Create(context.Background(), req)
	assertUserError(
		t, err, http.StatusConflict,
		"La unidad seleccionada acaba de ser asignada "+
			"a otro conductor. Intenta de nuevo.",
	)
	assert.Len(t, s.Drivers, 1, "driver insert must roll back")
	assert.Equal(
		t, "XXXX800101HJCRRN01", s.Vehicles[vid].DriverCURP,
		"existing link must survive",
	)
}

type updateEnv struct {
	store      *fakerp.Store
	uc         *driversuc.UseCase
	driverID   int64
	vehicleID  int64
	otherVehID int64
}

// newUpdateEnv seeds one driver linked to one vehicle, plus one
// unassigned vehicle of the same branch.
func newUpdateEnv(t *testing.T) updateEnv {
	s := seedStore()
	did := s.AddDriver(model.Driver{
		FullName: "Juan Pérez García", CURP: "PEGJ800101HJCRRN09",
		RFC: "PEGJ800101AAA", License: "LIC-1234", LicenseValid: true,
		Phone: "3312345678", Email: "juan.perez@example.mx",
		BranchCode: "00210", Available: true,
	})
	vid := s.AddVehicle(model.Vehicle{
		Plate: "JAL-001-A", RegistrationCard: "TC-001", TypeID: 1,
		BranchCode: "00210", DriverCURP: "PEGJ800101HJCRRN09",
		Status: model.VehicleStatusAvailable,
	})
	other := s.AddVehicle(model.Vehicle{
		Plate: "JAL-002-B", RegistrationCard: "TC-002", TypeID: 1,
		BranchCode: "00210", Status: model.VehicleStatusAvailable,
	})
	return updateEnv{
		store:      s,
		uc:         newUseCase(t, s),
		driverID:   did,
		vehicleID:  vid,
		otherVehID: other,
	}
}

func TestUpdateOmittedChoiceKeepsLink(t *testing.T) {
	env := newUpdateEnv(t)
	req := validRequest()
	req.Phone = "3300000000"
	require.NoError(
		t, env.uc.Update(context.Background(), env.driverID, req),
	)
	assert.Equal(
		t, "3300000000", env.store.Drivers[env.driverID].Phone,
	)
	assert.Equal(
		t, req.CURP, env.store.Vehicles[env.vehicleID].DriverCURP,
		"omitted vehicle field must leave the link untouched",
	)
	assert.Zero(t, env.store.Counters.Unassigns)
	assert.Zero(t, env.store.Counters.Claims)
}

func TestUpdateClearUnassignsAllVehicles(t *testing.T) {
	env := newUpdateEnv(t)
	// a second vehicle under the same CURP, the anomaly the clear
	// instruction must also wipe
	extra := env.store.AddVehicle(model.Vehicle{
		Plate: "JAL-003-C", RegistrationCard: "TC-003", TypeID: 1,
		BranchCode: "00210", DriverCURP: "PEGJ800101HJCRRN09",
		Status: model.VehicleStatusAvailable,
	})
	req := validRequest()
	req.Vehicle = model.ClearVehicle()
	require.NoError(
		t, env.uc.Update(context.Background(), env.driverID, req),
	)
	assert.Empty(t, env.store.Vehicles[env.vehicleID].DriverCURP)
	assert.Empty(t, env.store.Vehicles[extra].DriverCURP)
}

func TestUpdateAssignAlreadyLinkedIsNoop(t *testing.T) {
	env := newUpdateEnv(t)
	req := validRequest()
	req.Vehicle = model.AssignVehicle(env.vehicleID)
	require.NoError(
		t, env.uc.Update(context.Background(), env.driverID, req),
	)
	assert.Equal(
		t, req.CURP, env.store.Vehicles[env.vehicleID].DriverCURP,
	)
	assert.Zero(
		t, env.store.Counters.Unassigns,
		"assigning the linked vehicle must not touch the links",
	)
	assert.Zero(t, env.store.Counters.Claims)
}

func TestUpdateAssignDifferentVehicle(t *testing.T) {
	env := newUpdateEnv(t)
	req := validRequest()
	req.Vehicle = model.AssignVehicle(env.otherVehID)
	require.NoError(
		t, env.uc.Update(context.Background(), env.driverID, req),
	)
	assert.Empty(
		t, env.store.Vehicles[env.vehicleID].DriverCURP,
		"old vehicle must be unlinked",
	)
	assert.Equal(
		t, req.CURP, env.store.Vehicles[env.otherVehID].DriverCURP,
	)
	assert.Equal(
		t, []int64{env.otherVehID}, env.store.VehiclesOf(req.CURP),
		"exactly one vehicle may stay linked",
	)
}

func TestUpdateChangesCURPAndMovesLink(t *testing.T) {
	env := newUpdateEnv(t)
	req := validRequest()
	req.CURP = "PEGJ800101HJCRRN10"
	req.Vehicle = model.AssignVehicle(env.otherVehID)
	require.NoError(
		t, env.uc.Update(context.Background(), env.driverID, req),
	)
	assert.Empty(
		t, env.store.Vehicles[env.vehicleID].DriverCURP,
		"vehicles of the old CURP must be unlinked",
	)
	assert.Equal(
		t, "PEGJ800101HJCRRN10",
		env.store.Vehicles[env.otherVehID].DriverCURP,
		"the claim must use the new CURP",
	)
}

func TestUpdateAssignTakenVehicleRollsBack(t *testing.T) {
	env := newUpdateEnv(t)
	env.store.AddDriver(model.Driver{
		FullName: "Otro Conductor", CURP: "XXXX800101HJCRRN01",
		RFC: "XXXX800101BBB", BranchCode: "00210",
	})
	taken := env.store.AddVehicle(model.Vehicle{
		Plate: "JAL-004-D", RegistrationCard: "TC-004", TypeID: 1,
		BranchCode: "00210", DriverCURP: "XXXX800101HJCRRN01",
		Status: model.VehicleStatusAvailable,
	})
	req := validRequest()
	req.Phone = "3300000000"
	req.Vehicle = model.AssignVehicle(taken)
	err := env.uc.Update(context.Background(), env.driverID, req)
	assertUserError(
		t, err, http.StatusConflict,
		"La unidad seleccionada acaba de ser asignada "+
			"a otro conductor. Intenta de nuevo.",
	)
	assert.Equal(
		t, "3312345678", env.store.Drivers[env.driverID].Phone,
		"driver field update must roll back",
	)
	assert.Equal(
		t, req.CURP, env.store.Vehicles[env.vehicleID].DriverCURP,
		"old link must roll back too",
	)
}

func TestUpdateMissingDriver(t *testing.T) {
	env := newUpdateEnv(t)
	err := env.uc.Update(context.Background(), 999, validRequest())
	assertUserError(
		t, err, http.StatusInternalServerError,
		"Error al actualizar el conductor. Intenta de nuevo.",
	)
}

func TestUpdateIsIdempotent(t *testing.T) {
	env := newUpdateEnv(t)
	req := validRequest()
	req.Vehicle = model.AssignVehicle(env.otherVehID)
	ctx := context.Background()
	require.NoError(t, env.uc.Update(ctx, env.driverID, req))
	first := env.store.VehiclesOf(req.CURP)
	require.NoError(t, env.uc.Update(ctx, env.driverID, req))
	assert.Equal(
		t, first, env.store.VehiclesOf(req.CURP),
		"repeating the same update must not change the links",
	)
}

func TestAvailableVehicles(t *testing.T) {
	s := seedStore()
	s.AddDriver(model.Driver{
		FullName: "Juan Pérez García", CURP: "PEGJ800101HJCRRN09",
		RFC: "PEGJ800101AAA", BranchCode: "00210",
	})
	s.AddDriver(model.Driver{
		FullName: "Otro Conductor", CURP: "XXXX800101HJCRRN01",
		RFC: "XXXX800101BBB", BranchCode: "00210",
	})
	mine := s.AddVehicle(model.Vehicle{
		Plate: "JAL-002-B", RegistrationCard: "TC-002", TypeID: 1,
		BranchCode: "00210", DriverCURP: "PEGJ800101HJCRRN09",
		Status: model.VehicleStatusAvailable,
	})
	free := s.AddVehicle(model.Vehicle{
		Plate: "JAL-001-A", RegistrationCard: "TC-001", TypeID: 1,
		BranchCode: "00210", Status: model.VehicleStatusAvailable,
	})
	s.AddVehicle(model.Vehicle{ // other driver's vehicle
		Plate: "JAL-003-C", RegistrationCard: "TC-003", TypeID: 1,
		BranchCode: "00210", DriverCURP: "XXXX800101HJCRRN01",
		Status: model.VehicleStatusAvailable,
	})
	s.AddVehicle(model.Vehicle{ // other branch
		Plate: "AAA-000-Z", RegistrationCard: "TC-009", TypeID: 1,
		BranchCode: "99999", Status: model.VehicleStatusAvailable,
	})
	uc := newUseCase(t, s)
	ctx := context.Background()

	rows := uc.AvailableVehicles(ctx, "00210", "PEGJ800101HJCRRN09")
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	assert.Equal(
		t, []int64{free, mine}, ids,
		"unassigned plus own vehicle, ordered by plate",
	)

	rows = uc.AvailableVehicles(ctx, "00210", "")
	require.Len(t, rows, 1, "a fresh driver sees unassigned only")
	assert.Equal(t, free, rows[0].ID)
}

func TestListClampsPagination(t *testing.T) {
	s := seedStore()
	for i := 0; i < 15; i++ {
		s.AddDriver(model.Driver{
			FullName: "Conductor " + string(rune('A'+i)),
			CURP:     "CURP" + string(rune('A'+i)),
			RFC:      "RFC" + string(rune('A'+i)),
			Phone:    "33", Email: "c@example.mx",
			BranchCode: "00210",
		})
	}
	uc := newUseCase(t, s)
	ctx := context.Background()

	rows, pg := uc.List(ctx, 0, 0, "", "")
	assert.Len(t, rows, 10, "limit must default to the page size")
	assert.Equal(t, int64(15), pg.Total)
	assert.Equal(t, 2, pg.TotalPages)
	assert.Equal(t, 1, pg.CurrentPage)

	rows, pg = uc.List(ctx, 2, 10, "", "")
	assert.Len(t, rows, 5)
	assert.Equal(t, 2, pg.CurrentPage)

	_, pg = uc.List(ctx, 1, 1000, "", "")
	assert.Equal(t, 100, pg.Limit, "limit must be clamped")
}
