// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesuc_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/flotamx/flotaweb/internal/test/fakerp"
	"github.com/flotamx/flotaweb/pkg/core/cerr"
	"github.com/flotamx/flotaweb/pkg/core/model"
	"github.com/flotamx/flotaweb/pkg/core/usecase/vehiclesuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(t *testing.T, s *fakerp.Store) *vehiclesuc.UseCase {
	uc, err := vehiclesuc.New(fakerp.NewPool(s), fakerp.NewVehicles())
	require.NoError(t, err, "cannot instantiate vehicles use case")
	return uc
}

func seedStore() *fakerp.Store {
	s := fakerp.NewStore()
	s.AddOffice(model.BranchOffice{
		ID: 1, Code: "00210", Name: "CUO Centro",
		Entity: "Jalisco", Municipality: "Guadalajara", Active: true,
	})
	s.AddType(model.VehicleType{ID: 1, Name: "Camioneta", CapacityKg: 1500})
	s.AddDriver(model.Driver{
		FullName: "Juan Pérez García", CURP: "PEGJ800101HJCRRN09",
		RFC: "PEGJ800101AAA", BranchCode: "00210",
	})
	return s
}

func validRequest() vehiclesuc.Request {
	return vehiclesuc.Request{
		Plate:            "JAL-001-A",
		RegistrationCard: "TC-001",
		TypeID:           1,
		BranchCode:       "00210",
		Status:           model.VehicleStatusAvailable,
		CargoVolume:      12.5,
		Axles:            2,
		Tires:            4,
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
		mutate  func(*vehiclesuc.Request)
		message string
	}{
		{
			"missing plate",
			func(r *vehiclesuc.Request) { r.Plate = " " },
			"Las placas son obligatorias.",
		},
		{
			"missing card",
			func(r *vehiclesuc.Request) { r.RegistrationCard = "" },
			"La tarjeta de circulación es obligatoria.",
		},
		{
			"missing type",
			func(r *vehiclesuc.Request) { r.TypeID = 0 },
			"El tipo de vehículo es obligatorio.",
		},
		{
			"missing branch",
			func(r *vehiclesuc.Request) { r.BranchCode = "" },
			"La sucursal es obligatoria. " +
				"Por favor selecciona una sucursal.",
		},
		{
			"invalid status",
			func(r *vehiclesuc.Request) { r.Status = 0 },
			"El estado de la unidad no es válido.",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := seedStore()
			uc := newUseCase(t, s)
			req := validRequest()
			tc.mutate(&req)
			err := uc.Create(context.Background(), req)
			assertUserError(t, err, http.StatusBadRequest, tc.message)
			assert.Zero(t, s.Counters.VehicleCreates)
		})
	}
}

func TestCreateWithDriverStealsLink(t *testing.T) {
	s := seedStore()
	old := s.AddVehicle(model.Vehicle{
		Plate: "JAL-009-Z", RegistrationCard: "TC-009", TypeID: 1,
		BranchCode: "00210", DriverCURP: "PEGJ800101HJCRRN09",
		Status: model.VehicleStatusAvailable,
	})
	uc := newUseCase(t, s)
	req := validRequest()
	req.Driver = model.AssignDriver("PEGJ800101HJCRRN09")
	require.NoError(t, uc.Create(context.Background(), req))
	assert.Empty(
		t, s.Vehicles[old].DriverCURP,
		"the driver's previous vehicle must be unlinked",
	)
	assert.Equal(
		t, []int64{2}, s.VehiclesOf("PEGJ800101HJCRRN09"),
		"exactly the new vehicle may stay linked",
	)
}

func TestCreateDuplicatePlate(t *testing.T) {
	s := seedStore()
	s.AddVehicle(model.Vehicle{
		Plate: "JAL-001-A", RegistrationCard: "TC-009", TypeID: 1,
		BranchCode: "00210", Status: model.VehicleStatusAvailable,
	})
	uc := newUseCase(t, s)
	err := uc.Create(context.Background(), validRequest())
	assertUserError(
		t, err, http.StatusConflict,
		`Las placas "JAL-001-A" ya están registradas en otra unidad.`,
	)
	assert.Len(t, s.Vehicles, 1)
}

func TestCreateUnknownType(t *testing.T) {
	s := seedStore()
	uc := newUseCase(t, s)
	req := validRequest()
	req.TypeID = 42
	err := uc.Create(context.Background(), req)
	assertUserError(
		t, err, http.StatusBadRequest,
		"El tipo de vehículo seleccionado no existe. "+
			"Por favor selecciona uno válido.",
	)
}

func TestCreateUnknownDriver(t *testing.T) {
	s := seedStore()
	uc := newUseCase(t, s)
	req := validRequest()
	req.Driver = model.AssignDriver("ZZZZ800101HJCRRN99")
	err := uc.Create(context.Background(), req)
	assertUserError(
		t, err, http.StatusBadRequest,
		"El conductor seleccionado no existe. "+
			"Por favor selecciona uno válido.",
	)
	assert.Empty(t, s.Vehicles, "vehicle insert must roll back")
}

func TestUpdateReassignsDriver(t *testing.T) {
	s := seedStore()
	s.AddDriver(model.Driver{
		FullName: "Otro Conductor", CURP: "XXXX800101HJCRRN01",
		RFC: "XXXX800101BBB", BranchCode: "00210",
	})
	mine := s.AddVehicle(model.Vehicle{
		Plate: "JAL-001-A", RegistrationCard: "TC-001", TypeID: 1,
		BranchCode: "00210", DriverCURP: "XXXX800101HJCRRN01",
		Status: model.VehicleStatusAvailable,
	})
	other := s.AddVehicle(model.Vehicle{
		Plate: "JAL-002-B", RegistrationCard: "TC-002", TypeID: 1,
		BranchCode: "00210", DriverCURP: "PEGJ800101HJCRRN09",
		Status: model.VehicleStatusAvailable,
	})
	uc := newUseCase(t, s)
	req := validRequest()
	req.Driver = model.AssignDriver("PEGJ800101HJCRRN09")
	require.NoError(t, uc.Update(context.Background(), mine, req))
	assert.Empty(
		t, s.Vehicles[other].DriverCURP,
		"the new driver's previous vehicle must be unlinked",
	)
	assert.Equal(t, "PEGJ800101HJCRRN09", s.Vehicles[mine].DriverCURP)
}

func TestUpdateAssignSameDriverIsNoop(t *testing.T) {
	s := seedStore()
	vid := s.AddVehicle(model.Vehicle{
		Plate: "JAL-001-A", RegistrationCard: "TC-001", TypeID: 1,
		BranchCode: "00210", DriverCURP: "PEGJ800101HJCRRN09",
		Status: model.VehicleStatusAvailable,
	})
	uc := newUseCase(t, s)
	req := validRequest()
	req.Driver = model.AssignDriver("PEGJ800101HJCRRN09")
	require.NoError(t, uc.Update(context.Background(), vid, req))
	assert.Zero(
		t, s.Counters.Unassigns,
		"relinking the same driver must not touch the links",
	)
	assert.Zero(t, s.Counters.SetDrivers)
}

func TestUpdateClearDetachesThisVehicleOnly(t *testing.T) {
	s := seedStore()
	vid := s.AddVehicle(model.Vehicle{
		Plate: "JAL-001-A", RegistrationCard: "TC-001", TypeID: 1,
		BranchCode: "00210", DriverCURP: "PEGJ800101HJCRRN09",
		Status: model.VehicleStatusAvailable,
	})
	uc := newUseCase(t, s)
	req := validRequest()
	req.Driver = model.ClearDriver()
	require.NoError(t, uc.Update(context.Background(), vid, req))
	assert.Empty(t, s.Vehicles[vid].DriverCURP)
	assert.Zero(
		t, s.Counters.Unassigns,
		"clearing detaches this row, not the driver's other links",
	)
}

func TestUpdateOmittedDriverKeepsLink(t *testing.T) {
	s := seedStore()
	vid := s.AddVehicle(model.Vehicle{
		Plate: "JAL-001-A", RegistrationCard: "TC-001", TypeID: 1,
		BranchCode: "00210", DriverCURP: "PEGJ800101HJCRRN09",
		Status: model.VehicleStatusAvailable,
	})
	uc := newUseCase(t, s)
	req := validRequest()
	req.Status = model.VehicleStatusMaintenance
	require.NoError(t, uc.Update(context.Background(), vid, req))
	assert.Equal(
		t, model.VehicleStatusMaintenance, s.Vehicles[vid].Status,
	)
	assert.Equal(
		t, "PEGJ800101HJCRRN09", s.Vehicles[vid].DriverCURP,
		"omitted driver field must leave the link untouched",
	)
}

func TestListWithDrivers(t *testing.T) {
	s := seedStore()
	s.AddVehicle(model.Vehicle{
		Plate: "JAL-001-A", RegistrationCard: "TC-001", TypeID: 1,
		BranchCode: "00210", DriverCURP: "PEGJ800101HJCRRN09",
		Status: model.VehicleStatusEnRoute,
	})
	s.AddVehicle(model.Vehicle{
		Plate: "JAL-002-B", RegistrationCard: "TC-002", TypeID: 1,
		BranchCode: "00210", Status: model.VehicleStatusAvailable,
	})
	uc := newUseCase(t, s)
	rows := uc.ListWithDrivers(context.Background())
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].Driver)
	assert.Equal(t, "Juan Pérez García", rows[0].Driver.FullName)
	assert.Nil(t, rows[1].Driver, "unassigned vehicle has no driver")
}
