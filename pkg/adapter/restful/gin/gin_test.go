// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/flotamx/flotaweb/internal/test/dbcontainer"
	"github.com/flotamx/flotaweb/pkg/adapter/config"
	"github.com/flotamx/flotaweb/pkg/adapter/db/postgres"
	"github.com/flotamx/flotaweb/pkg/adapter/restful/gin"
	"github.com/flotamx/flotaweb/pkg/adapter/restful/gin/routes"
	"github.com/flotamx/flotaweb/pkg/core/repo"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/suite"
)

type IntegrationGinTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool
	Gin  *gin.Engine
}

func TestIntegrationGinTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationGinTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
	})
}

func (igts *IntegrationGinTestSuite) SetupSuite() {
	err := postgres.InitSchema(igts.Ctx, igts.Pool)
	igts.Require().NoError(err, "failed to create the fleet schema")
	igts.exec(`INSERT INTO oficinas
	(clave_cuo, nombre_cuo, nombre_entidad, nombre_municipio, activo)
VALUES
	('00210', 'CUO Centro', 'Jalisco', 'Guadalajara', TRUE),
	('00305', 'CUO Norte', 'Nuevo León', 'Monterrey', TRUE),
	('00999', 'CUO Cerrada', 'Sonora', 'Hermosillo', FALSE)`)
	igts.exec(`INSERT INTO tipos_vehiculo (tipo_vehiculo, capacidad_kg)
VALUES ('Camioneta', 1500), ('Tractocamión', 25000)`)

	igts.Gin = gin.New(gin.Logger(), gin.Recovery(), gin.RequestID())
	igts.Require().NotNil(igts.Gin, "cannot instantiate Gin engine")
	err = routes.Register(igts.Gin, igts.Pool, &config.Config{})
	igts.Require().NoError(err, "failed to register Gin routes")
}

func (igts *IntegrationGinTestSuite) exec(sql string, args ...any) {
	err := igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			_, err := c.Exec(ctx, sql, args...)
			return err
		},
	)
	igts.Require().NoError(err, "failed to run: %s", sql)
}

func urlEncoded(m map[string]string) io.Reader {
	u := url.Values{}
	for k, v := range m {
		u.Set(k, v)
	}
	return strings.NewReader(u.Encode())
}

func (igts *IntegrationGinTestSuite) send(
	method, path string, body io.Reader, res any,
) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, path, body)
	igts.Require().NoError(err, "cannot create %s request", method)
	if body != nil {
		req.Header.Add(
			"Content-Type", "application/x-www-form-urlencoded",
		)
	}
	igts.Gin.ServeHTTP(w, req)
	if res != nil {
		b := w.Body.Bytes()
		igts.Require().NoError(
			json.Unmarshal(b, res), "body is not json: %s", b,
		)
	}
	return w
}

type resultResp struct {
	Success bool
	Message string
}

func driverForm(curp, rfc string) map[string]string {
	return map[string]string{
		"nombreCompleto":  "Conductor " + curp[:4],
		"curp":            curp,
		"rfc":             rfc,
		"licencia":        "LIC-" + curp[:4],
		"licenciaVigente": "true",
		"telefono":        "3312345678",
		"correo":          curp + "@example.mx",
		"claveOficina":    "00210",
		"disponibilidad":  "true",
	}
}

func vehicleForm(plate, card string) map[string]string {
	return map[string]string{
		"placas":             plate,
		"tarjetaCirculacion": card,
		"idTipoVehiculo":     "1",
		"claveOficina":       "00210",
		"estado":             "disponible",
		"volumenCarga":       "12.5",
		"ejes":               "2",
		"llantas":            "4",
	}
}

func (igts *IntegrationGinTestSuite) createDriver(
	form map[string]string,
) {
	res := &resultResp{}
	w := igts.send(
		http.MethodPost, "/api/flotaweb/v1/drivers",
		urlEncoded(form), res,
	)
	igts.Require().Equal(200, w.Code, "driver creation: %s", res.Message)
	igts.Require().True(res.Success)
}

func (igts *IntegrationGinTestSuite) createVehicle(
	form map[string]string,
) {
	res := &resultResp{}
	w := igts.send(
		http.MethodPost, "/api/flotaweb/v1/vehicles",
		urlEncoded(form), res,
	)
	igts.Require().Equal(200, w.Code, "vehicle creation: %s", res.Message)
	igts.Require().True(res.Success)
}

type availableVehicle struct {
	ID     int64
	Placas string
	Tipo   string
}

// availableVehicles fetches the assignment dropdown rows for the curp
// driver of the 00210 branch.
func (igts *IntegrationGinTestSuite) availableVehicles(
	curp string,
) []availableVehicle {
	var rows []availableVehicle
	w := igts.send(
		http.MethodGet,
		"/api/flotaweb/v1/drivers/available-vehicles"+
			"?claveOficina=00210&curp="+curp,
		nil, &rows,
	)
	igts.Require().Equal(200, w.Code)
	return rows
}

func (igts *IntegrationGinTestSuite) vehicleIDByPlate(
	plate string,
) int64 {
	for _, v := range igts.availableVehicles("") {
		if v.Placas == plate {
			return v.ID
		}
	}
	igts.Require().Fail("vehicle not found among unassigned", plate)
	return 0
}

func (igts *IntegrationGinTestSuite) TestCreateDriverValidation() {
	for _, tc := range []struct {
		name    string
		drop    string
		message string
	}{
		{
			"missing name", "nombreCompleto",
			"El nombre completo es obligatorio.",
		},
		{"missing curp", "curp", "El CURP es obligatorio."},
		{
			"missing branch", "claveOficina",
			"La sucursal es obligatoria. " +
				"Por favor selecciona una sucursal.",
		},
	} {
		igts.Run(tc.name, func() {
			form := driverForm("VALI800101HJCRRN00", "VALI800101AAA")
			delete(form, tc.drop)
			res := &resultResp{}
			w := igts.send(
				http.MethodPost, "/api/flotaweb/v1/drivers",
				urlEncoded(form), res,
			)
			igts.Equal(400, w.Code)
			igts.False(res.Success)
			igts.Equal(tc.message, res.Message)
		})
	}
}

func (igts *IntegrationGinTestSuite) TestDuplicateCURP() {
	igts.createDriver(driverForm("DUPA800101HJCRRN01", "DUPA800101AAA"))
	res := &resultResp{}
	w := igts.send(
		http.MethodPost, "/api/flotaweb/v1/drivers",
		urlEncoded(driverForm("DUPA800101HJCRRN01", "DUPB800101BBB")),
		res,
	)
	igts.Equal(409, w.Code)
	igts.False(res.Success)
	igts.Equal(
		`El CURP "DUPA800101HJCRRN01" ya está registrado `+
			`en otro conductor.`,
		res.Message,
	)
}

func (igts *IntegrationGinTestSuite) TestListDrivers() {
	igts.createDriver(driverForm("LIST800101HJCRRN02", "LIST800101AAA"))
	page := &struct {
		Data []struct {
			Curp     string
			Sucursal struct {
				ClaveCuo  string
				NombreCuo string
			}
		}
		Pagination struct {
			Total       int64
			CurrentPage int
		}
	}{}
	w := igts.send(
		http.MethodGet,
		"/api/flotaweb/v1/drivers?search=LIST800101",
		nil, page,
	)
	igts.Equal(200, w.Code)
	igts.Require().Len(page.Data, 1)
	igts.Equal("LIST800101HJCRRN02", page.Data[0].Curp)
	igts.Equal("00210", page.Data[0].Sucursal.ClaveCuo)
	igts.Equal("CUO Centro", page.Data[0].Sucursal.NombreCuo)
	igts.Equal(int64(1), page.Pagination.Total)
	igts.Equal(1, page.Pagination.CurrentPage)
}

func (igts *IntegrationGinTestSuite) TestAvailabilityFiltersTaken() {
	igts.createVehicle(vehicleForm("AVL-001-A", "TC-AVL-1"))
	igts.createVehicle(vehicleForm("AVL-002-B", "TC-AVL-2"))
	vid := igts.vehicleIDByPlate("AVL-001-A")

	form := driverForm("AVLA800101HJCRRN03", "AVLA800101AAA")
	form["vehiculoId"] = formatInt(vid)
	igts.createDriver(form)

	var plates []string
	for _, v := range igts.availableVehicles("") {
		plates = append(plates, v.Placas)
	}
	igts.NotContains(
		plates, "AVL-001-A",
		"an assigned vehicle may not be offered to fresh drivers",
	)
	igts.Contains(plates, "AVL-002-B")

	plates = nil
	for _, v := range igts.availableVehicles("AVLA800101HJCRRN03") {
		plates = append(plates, v.Placas)
	}
	igts.Contains(
		plates, "AVL-001-A",
		"the own vehicle must stay offered to its driver",
	)
}

func (igts *IntegrationGinTestSuite) TestReassignVehicle() {
	igts.createVehicle(vehicleForm("REA-001-A", "TC-REA-1"))
	igts.createVehicle(vehicleForm("REA-002-B", "TC-REA-2"))
	v1 := igts.vehicleIDByPlate("REA-001-A")
	v2 := igts.vehicleIDByPlate("REA-002-B")

	form := driverForm("REAS800101HJCRRN04", "REAS800101AAA")
	form["vehiculoId"] = formatInt(v1)
	igts.createDriver(form)
	did := igts.driverIDByCURP("REAS800101HJCRRN04")

	form["vehiculoId"] = formatInt(v2)
	res := &resultResp{}
	w := igts.send(
		http.MethodPatch,
		"/api/flotaweb/v1/drivers/"+formatInt(did),
		urlEncoded(form), res,
	)
	igts.Require().Equal(200, w.Code, "reassigning: %s", res.Message)

	igts.Equal(
		"REAS800101HJCRRN04", igts.assignedCURP("REA-002-B"),
	)
	igts.Empty(
		igts.assignedCURP("REA-001-A"),
		"the old vehicle must be released",
	)

	// clearing with the sentinel detaches the remaining vehicle
	form["vehiculoId"] = "unassigned"
	w = igts.send(
		http.MethodPatch,
		"/api/flotaweb/v1/drivers/"+formatInt(did),
		urlEncoded(form), res,
	)
	igts.Require().Equal(200, w.Code, "clearing: %s", res.Message)
	igts.Empty(igts.assignedCURP("REA-002-B"))
}

func (igts *IntegrationGinTestSuite) TestTakenVehicleConflict() {
	igts.createVehicle(vehicleForm("CNF-001-A", "TC-CNF-1"))
	vid := igts.vehicleIDByPlate("CNF-001-A")

	form := driverForm("CNFA800101HJCRRN05", "CNFA800101AAA")
	form["vehiculoId"] = formatInt(vid)
	igts.createDriver(form)

	form = driverForm("CNFB800101HJCRRN06", "CNFB800101BBB")
	form["vehiculoId"] = formatInt(vid)
	res := &resultResp{}
	w := igts.send(
		http.MethodPost, "/api/flotaweb/v1/drivers",
		urlEncoded(form), res,
	)
	igts.Equal(409, w.Code)
	igts.Equal(
		"La unidad seleccionada acaba de ser asignada "+
			"a otro conductor. Intenta de nuevo.",
		res.Message,
	)
	page := igts.driversPage("CNFB800101")
	igts.Empty(
		page, "the conflicting driver insert must roll back",
	)
}

func (igts *IntegrationGinTestSuite) TestOfficesAndTypes() {
	var offices []struct {
		ClaveCuo  string
		NombreCuo string
	}
	w := igts.send(
		http.MethodGet, "/api/flotaweb/v1/offices/active",
		nil, &offices,
	)
	igts.Equal(200, w.Code)
	codes := make([]string, 0, len(offices))
	for _, o := range offices {
		codes = append(codes, o.ClaveCuo)
	}
	igts.Contains(codes, "00210")
	igts.NotContains(
		codes, "00999", "inactive offices must be hidden",
	)

	var types []struct {
		TipoVehiculo string
		CapacidadKg  float64
	}
	w = igts.send(
		http.MethodGet, "/api/flotaweb/v1/vehicle-types",
		nil, &types,
	)
	igts.Equal(200, w.Code)
	igts.Require().Len(types, 2)
	igts.Equal("Camioneta", types[0].TipoVehiculo)
	igts.Equal(float64(1500), types[0].CapacidadKg)
}

// driversPage returns the driver rows matching the search text.
func (igts *IntegrationGinTestSuite) driversPage(search string) []struct {
	ID   int64
	Curp string
} {
	page := &struct {
		Data []struct {
			ID   int64
			Curp string
		}
	}{}
	w := igts.send(
		http.MethodGet,
		"/api/flotaweb/v1/drivers?search="+search,
		nil, page,
	)
	igts.Require().Equal(200, w.Code)
	return page.Data
}

func (igts *IntegrationGinTestSuite) driverIDByCURP(curp string) int64 {
	rows := igts.driversPage(curp)
	igts.Require().Len(rows, 1, "driver %s not found", curp)
	return rows[0].ID
}

// assignedCURP returns the CURP of the driver holding the plate
// vehicle, or empty while unassigned.
func (igts *IntegrationGinTestSuite) assignedCURP(plate string) string {
	var rows []struct {
		Placas    string
		Conductor *struct {
			Curp string
		}
	}
	w := igts.send(
		http.MethodGet, "/api/flotaweb/v1/vehicles/with-drivers",
		nil, &rows,
	)
	igts.Require().Equal(200, w.Code)
	for _, r := range rows {
		if r.Placas == plate {
			if r.Conductor == nil {
				return ""
			}
			return r.Conductor.Curp
		}
	}
	igts.Require().Fail("vehicle not found in catalog", plate)
	return ""
}

func formatInt(id int64) string {
	return strconv.FormatInt(id, 10)
}
