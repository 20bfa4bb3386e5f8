// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package fakerp is an internal helper for the use case test
// packages. It provides an in-memory realization of the repo.Pool and
// the per-aggregate repository interfaces with the same observable
// semantics as the PostgreSQL adapter: unique and foreign key
// violations surface as the same cerr error values, transactions roll
// the store back on error, and the conditional vehicle claim reports
// a lost race through its boolean result. Write operations are
// counted, so tests can assert which statements a use case issued.
package fakerp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/flotamx/flotaweb/pkg/core/cerr"
	"github.com/flotamx/flotaweb/pkg/core/model"
	"github.com/flotamx/flotaweb/pkg/core/repo"
)

// Counters records how many times each write operation ran,
// including writes whose transaction rolled back afterwards.
type Counters struct {
	DriverCreates  int
	DriverUpdates  int
	VehicleCreates int
	VehicleUpdates int
	Unassigns      int
	Claims         int
	SetDrivers     int
}

// Store is the in-memory database. Tests may seed its maps directly
// before exercising a use case.
type Store struct {
	Drivers  map[int64]model.Driver
	Vehicles map[int64]model.Vehicle
	Offices  map[string]model.BranchOffice
	Types    map[int64]model.VehicleType

	NextDriverID  int64
	NextVehicleID int64

	Counters Counters
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		Drivers:       make(map[int64]model.Driver),
		Vehicles:      make(map[int64]model.Vehicle),
		Offices:       make(map[string]model.BranchOffice),
		Types:         make(map[int64]model.VehicleType),
		NextDriverID:  1,
		NextVehicleID: 1,
	}
}

// AddOffice seeds a branch office keyed by its CUO code.
func (s *Store) AddOffice(o model.BranchOffice) {
	s.Offices[o.Code] = o
}

// AddType seeds a vehicle type.
func (s *Store) AddType(t model.VehicleType) {
	s.Types[t.ID] = t
}

// AddDriver seeds a driver, assigning the next free ID, and returns
// that ID.
func (s *Store) AddDriver(d model.Driver) int64 {
	d.ID = s.NextDriverID
	s.NextDriverID++
	s.Drivers[d.ID] = d
	return d.ID
}

// AddVehicle seeds a vehicle, assigning the next free ID, and returns
// that ID.
func (s *Store) AddVehicle(v model.Vehicle) int64 {
	v.ID = s.NextVehicleID
	s.NextVehicleID++
	s.Vehicles[v.ID] = v
	return v.ID
}

// VehiclesOf returns the IDs of the vehicles linked to the curp
// driver, in ascending ID order.
func (s *Store) VehiclesOf(curp string) []int64 {
	var out []int64
	for id, v := range s.Vehicles {
		if v.DriverCURP == curp {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Store) snapshot() *Store {
	cp := NewStore()
	for k, v := range s.Drivers {
		cp.Drivers[k] = v
	}
	for k, v := range s.Vehicles {
		cp.Vehicles[k] = v
	}
	for k, v := range s.Offices {
		cp.Offices[k] = v
	}
	for k, v := range s.Types {
		cp.Types[k] = v
	}
	cp.NextDriverID = s.NextDriverID
	cp.NextVehicleID = s.NextVehicleID
	return cp
}

func (s *Store) restore(from *Store) {
	s.Drivers = from.Drivers
	s.Vehicles = from.Vehicles
	s.Offices = from.Offices
	s.Types = from.Types
	s.NextDriverID = from.NextDriverID
	s.NextVehicleID = from.NextVehicleID
}

// Pool realizes repo.Pool over a Store.
type Pool struct {
	Store *Store
}

// NewPool creates a pool backed by the s store.
func NewPool(s *Store) *Pool {
	return &Pool{Store: s}
}

func (p *Pool) Conn(ctx context.Context, h repo.ConnHandler) error {
	return h(ctx, &conn{store: p.Store})
}

type conn struct {
	store *Store
}

func (c *conn) IsConn() {}

func (c *conn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, nil
}

func (c *conn) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, fmt.Errorf("raw queries are not supported")
}

// Tx runs h and restores the pre-transaction store state if it
// returns an error, mirroring a rollback. Write counters are not
// restored, so tests can observe writes of rolled back transactions.
func (c *conn) Tx(ctx context.Context, h repo.TxHandler) error {
	snap := c.store.snapshot()
	if err := h(ctx, &tx{store: c.store}); err != nil {
		c.store.restore(snap)
		return err
	}
	return nil
}

type tx struct {
	store *Store
}

func (t *tx) IsTx() {}

func (t *tx) Exec(context.Context, string, ...any) (int64, error) {
	return 0, nil
}

func (t *tx) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, fmt.Errorf("raw queries are not supported")
}

func storeOf(q any) *Store {
	switch qq := q.(type) {
	case *conn:
		return qq.store
	case *tx:
		return qq.store
	default:
		panic(fmt.Sprintf("unexpected queryer type: %T", q))
	}
}

func duplicate(constraint string) error {
	return cerr.Conflict(&cerr.DuplicateError{Constraint: constraint})
}

func fkViolation(constraint string) error {
	return cerr.BadRequest(&cerr.ForeignKeyError{Constraint: constraint})
}

// Drivers realizes repo.Drivers over the shared store.
type Drivers struct {
}

func NewDrivers() *Drivers {
	return &Drivers{}
}

func (d *Drivers) Conn(c repo.Conn) repo.DriversConnQueryer {
	return driversQueryer{store: storeOf(c)}
}

func (d *Drivers) Tx(t repo.Tx) repo.DriversTxQueryer {
	return driversQueryer{store: storeOf(t)}
}

type driversQueryer struct {
	store *Store
}

func (dq driversQueryer) checkDriver(d *model.Driver) error {
	for id, o := range dq.store.Drivers {
		if id == d.ID {
			continue
		}
		if o.CURP == d.CURP {
			return duplicate("conductores_curp_key")
		}
		if o.RFC == d.RFC {
			return duplicate("conductores_rfc_key")
		}
	}
	if _, ok := dq.store.Offices[d.BranchCode]; !ok {
		return fkViolation("conductores_clave_oficina_fkey")
	}
	return nil
}

func (dq driversQueryer) Create(ctx context.Context, d *model.Driver) error {
	dq.store.Counters.DriverCreates++
	if err := dq.checkDriver(d); err != nil {
		return err
	}
	d.ID = dq.store.NextDriverID
	dq.store.NextDriverID++
	dq.store.Drivers[d.ID] = *d
	return nil
}

func (dq driversQueryer) Update(ctx context.Context, d *model.Driver) error {
	dq.store.Counters.DriverUpdates++
	if _, ok := dq.store.Drivers[d.ID]; !ok {
		return cerr.NotFound(
			fmt.Errorf("driver %d does not exist", d.ID),
		)
	}
	if err := dq.checkDriver(d); err != nil {
		return err
	}
	dq.store.Drivers[d.ID] = *d
	return nil
}

func (dq driversQueryer) FindWithVehicles(ctx context.Context, id int64) (
	*model.Driver, []model.Vehicle, error,
) {
	d, ok := dq.store.Drivers[id]
	if !ok {
		return nil, nil, cerr.NotFound(
			fmt.Errorf("driver %d does not exist", id),
		)
	}
	var vehicles []model.Vehicle
	for _, vid := range dq.store.VehiclesOf(d.CURP) {
		vehicles = append(vehicles, dq.store.Vehicles[vid])
	}
	return &d, vehicles, nil
}

func (dq driversQueryer) List(ctx context.Context, q repo.DriversListQuery) (
	[]model.DriverSummary, int64, error,
) {
	var all []model.Driver
	for _, d := range dq.store.Drivers {
		if q.BranchCode != "" && d.BranchCode != q.BranchCode {
			continue
		}
		if q.Search != "" && !matches(q.Search, d.FullName, d.CURP, d.RFC, d.Email) {
			continue
		}
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].FullName < all[j].FullName
	})
	total := int64(len(all))
	lo := q.Offset
	if lo > len(all) {
		lo = len(all)
	}
	hi := lo + q.Limit
	if hi > len(all) {
		hi = len(all)
	}
	out := make([]model.DriverSummary, 0, hi-lo)
	for _, d := range all[lo:hi] {
		ds := model.DriverSummary{Driver: d}
		if o, ok := dq.store.Offices[d.BranchCode]; ok {
			ds.Branch = o.Ref()
		}
		for _, vid := range dq.store.VehiclesOf(d.CURP) {
			v := dq.store.Vehicles[vid]
			ds.Vehicles = append(ds.Vehicles, model.VehicleRef{
				ID:       v.ID,
				Plate:    v.Plate,
				TypeName: dq.store.Types[v.TypeID].Name,
			})
		}
		out = append(out, ds)
	}
	return out, total, nil
}

func matches(search string, fields ...string) bool {
	search = strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

// Vehicles realizes repo.Vehicles over the shared store.
type Vehicles struct {
}

func NewVehicles() *Vehicles {
	return &Vehicles{}
}

func (v *Vehicles) Conn(c repo.Conn) repo.VehiclesConnQueryer {
	return vehiclesQueryer{store: storeOf(c)}
}

func (v *Vehicles) Tx(t repo.Tx) repo.VehiclesTxQueryer {
	return vehiclesQueryer{store: storeOf(t)}
}

type vehiclesQueryer struct {
	store *Store
}

func (vq vehiclesQueryer) checkVehicle(v *model.Vehicle) error {
	for id, o := range vq.store.Vehicles {
		if id == v.ID {
			continue
		}
		if o.Plate == v.Plate {
			return duplicate("unidades_placas_key")
		}
		if o.RegistrationCard == v.RegistrationCard {
			return duplicate("unidades_tarjeta_circulacion_key")
		}
	}
	if _, ok := vq.store.Types[v.TypeID]; !ok {
		return fkViolation("unidades_id_tipo_vehiculo_fkey")
	}
	if _, ok := vq.store.Offices[v.BranchCode]; !ok {
		return fkViolation("unidades_clave_oficina_fkey")
	}
	return nil
}

func (vq vehiclesQueryer) driverExists(curp string) bool {
	for _, d := range vq.store.Drivers {
		if d.CURP == curp {
			return true
		}
	}
	return false
}

func (vq vehiclesQueryer) Create(ctx context.Context, v *model.Vehicle) error {
	vq.store.Counters.VehicleCreates++
	if err := vq.checkVehicle(v); err != nil {
		return err
	}
	if v.DriverCURP != "" && !vq.driverExists(v.DriverCURP) {
		return fkViolation("unidades_curp_conductor_fkey")
	}
	v.ID = vq.store.NextVehicleID
	vq.store.NextVehicleID++
	vq.store.Vehicles[v.ID] = *v
	return nil
}

func (vq vehiclesQueryer) Update(ctx context.Context, v *model.Vehicle) error {
	vq.store.Counters.VehicleUpdates++
	cur, ok := vq.store.Vehicles[v.ID]
	if !ok {
		return cerr.NotFound(
			fmt.Errorf("vehicle %d does not exist", v.ID),
		)
	}
	if err := vq.checkVehicle(v); err != nil {
		return err
	}
	// the driver link column is owned by the link operations
	vv := *v
	vv.DriverCURP = cur.DriverCURP
	vq.store.Vehicles[v.ID] = vv
	return nil
}

func (vq vehiclesQueryer) FindByID(ctx context.Context, id int64) (
	*model.Vehicle, error,
) {
	v, ok := vq.store.Vehicles[id]
	if !ok {
		return nil, cerr.NotFound(
			fmt.Errorf("vehicle %d does not exist", id),
		)
	}
	return &v, nil
}

func (vq vehiclesQueryer) Available(
	ctx context.Context, branchCode, driverCURP string,
) ([]model.AvailableVehicle, error) {
	var out []model.AvailableVehicle
	for _, v := range vq.store.Vehicles {
		if v.BranchCode != branchCode {
			continue
		}
		if v.DriverCURP != "" &&
			(driverCURP == "" || v.DriverCURP != driverCURP) {
			continue
		}
		out = append(out, model.AvailableVehicle{
			ID:       v.ID,
			Plate:    v.Plate,
			TypeName: vq.store.Types[v.TypeID].Name,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Plate < out[j].Plate
	})
	return out, nil
}

func (vq vehiclesQueryer) UnassignDriver(
	ctx context.Context, curp string,
) (int64, error) {
	vq.store.Counters.Unassigns++
	var count int64
	for id, v := range vq.store.Vehicles {
		if v.DriverCURP == curp {
			v.DriverCURP = ""
			vq.store.Vehicles[id] = v
			count++
		}
	}
	return count, nil
}

func (vq vehiclesQueryer) ClaimForDriver(
	ctx context.Context, vehicleID int64, curp string,
) (bool, error) {
	vq.store.Counters.Claims++
	v, ok := vq.store.Vehicles[vehicleID]
	if !ok {
		return false, cerr.NotFound(
			fmt.Errorf("vehicle %d does not exist", vehicleID),
		)
	}
	if v.DriverCURP != "" && v.DriverCURP != curp {
		return false, nil
	}
	v.DriverCURP = curp
	vq.store.Vehicles[vehicleID] = v
	return true, nil
}

func (vq vehiclesQueryer) SetDriver(
	ctx context.Context, vehicleID int64, curp string,
) error {
	vq.store.Counters.SetDrivers++
	v, ok := vq.store.Vehicles[vehicleID]
	if !ok {
		return cerr.NotFound(
			fmt.Errorf("vehicle %d does not exist", vehicleID),
		)
	}
	if curp != "" && !vq.driverExists(curp) {
		return fkViolation("unidades_curp_conductor_fkey")
	}
	v.DriverCURP = curp
	vq.store.Vehicles[vehicleID] = v
	return nil
}

func (vq vehiclesQueryer) List(ctx context.Context, q repo.VehiclesListQuery) (
	[]model.VehicleSummary, int64, error,
) {
	var all []model.Vehicle
	for _, v := range vq.store.Vehicles {
		if q.BranchCode != "" && v.BranchCode != q.BranchCode {
			continue
		}
		if q.TypeName != "" && vq.store.Types[v.TypeID].Name != q.TypeName {
			continue
		}
		if q.Search != "" && !matches(q.Search, v.Plate, vq.driverName(v)) {
			continue
		}
		all = append(all, v)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	lo := q.Offset
	if lo > len(all) {
		lo = len(all)
	}
	hi := lo + q.Limit
	if hi > len(all) {
		hi = len(all)
	}
	out := make([]model.VehicleSummary, 0, hi-lo)
	for _, v := range all[lo:hi] {
		t := vq.store.Types[v.TypeID]
		vs := model.VehicleSummary{
			ID:         v.ID,
			Plate:      v.Plate,
			TypeName:   t.Name,
			CapacityKg: t.CapacityKg,
			Status:     v.Status,
			DriverName: vq.driverName(v),
		}
		if o, ok := vq.store.Offices[v.BranchCode]; ok {
			vs.Branch = o.Ref()
		}
		out = append(out, vs)
	}
	return out, total, nil
}

func (vq vehiclesQueryer) driverName(v model.Vehicle) string {
	if v.DriverCURP == "" {
		return ""
	}
	for _, d := range vq.store.Drivers {
		if d.CURP == v.DriverCURP {
			return d.FullName
		}
	}
	return ""
}

func (vq vehiclesQueryer) ListWithDrivers(ctx context.Context) (
	[]model.VehicleWithDriver, error,
) {
	var ids []int64
	for id := range vq.store.Vehicles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]model.VehicleWithDriver, 0, len(ids))
	for _, id := range ids {
		v := vq.store.Vehicles[id]
		vd := model.VehicleWithDriver{
			ID:       v.ID,
			Plate:    v.Plate,
			TypeName: vq.store.Types[v.TypeID].Name,
			Status:   v.Status,
		}
		if o, ok := vq.store.Offices[v.BranchCode]; ok {
			vd.Branch = o.Ref()
		}
		if v.DriverCURP != "" {
			for _, d := range vq.store.Drivers {
				if d.CURP == v.DriverCURP {
					vd.Driver = &model.DriverRef{
						ID:        d.ID,
						FullName:  d.FullName,
						CURP:      d.CURP,
						Phone:     d.Phone,
						Email:     d.Email,
						Available: d.Available,
					}
					break
				}
			}
		}
		out = append(out, vd)
	}
	return out, nil
}

// Offices realizes repo.Offices over the shared store.
type Offices struct {
}

func NewOffices() *Offices {
	return &Offices{}
}

func (o *Offices) Conn(c repo.Conn) repo.OfficesConnQueryer {
	return officesQueryer{store: storeOf(c)}
}

func (o *Offices) Tx(t repo.Tx) repo.OfficesTxQueryer {
	return officesQueryer{store: storeOf(t)}
}

type officesQueryer struct {
	store *Store
}

func (oq officesQueryer) ListActive(ctx context.Context) (
	[]model.BranchRef, error,
) {
	var out []model.BranchRef
	for _, o := range oq.store.Offices {
		if o.Active {
			out = append(out, o.Ref())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (oq officesQueryer) List(ctx context.Context, q repo.OfficesListQuery) (
	[]model.BranchOffice, int64, error,
) {
	var all []model.BranchOffice
	for _, o := range oq.store.Offices {
		if q.Search != "" &&
			!matches(q.Search, o.Name, o.Code, o.Municipality, o.Entity) {
			continue
		}
		all = append(all, o)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := int64(len(all))
	lo := q.Offset
	if lo > len(all) {
		lo = len(all)
	}
	hi := lo + q.Limit
	if hi > len(all) {
		hi = len(all)
	}
	return all[lo:hi], total, nil
}

func (oq officesQueryer) VehicleTypes(ctx context.Context) (
	[]model.VehicleType, error,
) {
	var out []model.VehicleType
	for _, t := range oq.store.Types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
