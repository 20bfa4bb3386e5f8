// Copyright (c) 2025 Flota MX
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"testing"

	"github.com/flotamx/flotaweb/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVehicleChoice(t *testing.T) {
	t.Run("absent field keeps links", func(t *testing.T) {
		vc, err := model.ParseVehicleChoice("", false)
		require.NoError(t, err)
		assert.True(t, vc.IsKeep())
	})
	t.Run("empty value clears", func(t *testing.T) {
		vc, err := model.ParseVehicleChoice("", true)
		require.NoError(t, err)
		assert.True(t, vc.IsClear())
	})
	t.Run("sentinel clears", func(t *testing.T) {
		vc, err := model.ParseVehicleChoice(
			model.UnassignedSentinel, true,
		)
		require.NoError(t, err)
		assert.True(t, vc.IsClear())
	})
	t.Run("positive id assigns", func(t *testing.T) {
		vc, err := model.ParseVehicleChoice("42", true)
		require.NoError(t, err)
		id, ok := vc.Assignment()
		require.True(t, ok)
		assert.Equal(t, int64(42), id)
	})
	for _, raw := range []string{"0", "-3", "x", "4.5"} {
		t.Run("rejects "+raw, func(t *testing.T) {
			_, err := model.ParseVehicleChoice(raw, true)
			assert.Error(t, err)
		})
	}
}

func TestParseDriverChoice(t *testing.T) {
	assert.True(t, model.ParseDriverChoice("", false).IsKeep())
	assert.True(t, model.ParseDriverChoice("", true).IsClear())
	assert.True(
		t,
		model.ParseDriverChoice(model.UnassignedSentinel, true).IsClear(),
	)
	curp, ok := model.ParseDriverChoice(
		"PEGJ800101HJCRRN09", true,
	).Assignment()
	require.True(t, ok)
	assert.Equal(t, "PEGJ800101HJCRRN09", curp)
}

func TestZeroChoiceIsKeep(t *testing.T) {
	var vc model.VehicleChoice
	assert.True(t, vc.IsKeep())
	_, ok := vc.Assignment()
	assert.False(t, ok)

	var dc model.DriverChoice
	assert.True(t, dc.IsKeep())
}

func TestVehicleStatus(t *testing.T) {
	for _, s := range []string{"disponible", "en_ruta", "mantenimiento"} {
		parsed, err := model.ParseVehicleStatus(s)
		require.NoError(t, err, "status %q", s)
		require.NoError(t, parsed.Validate())
		assert.Equal(t, s, parsed.String())
	}
	_, err := model.ParseVehicleStatus("volando")
	assert.ErrorIs(t, err, model.ErrUnknownVehicleStatus)
	assert.Error(t, model.VehicleStatus(0).Validate())
	assert.Panics(t, func() {
		_ = model.VehicleStatus(99).String()
	})
}

func TestNewPagination(t *testing.T) {
	pg := model.NewPagination(15, 2, 10)
	assert.Equal(t, int64(15), pg.Total)
	assert.Equal(t, 2, pg.TotalPages)
	assert.Equal(t, 2, pg.CurrentPage)
	assert.Equal(t, 10, pg.Limit)

	pg = model.NewPagination(0, 1, 10)
	assert.Zero(t, pg.TotalPages)
}
