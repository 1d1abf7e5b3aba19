// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package autodiff_test

import (
	"testing"

	"github.com/born-ml/gradval/autodiff"
	"github.com/stretchr/testify/assert"
)

func TestPublicAPI(t *testing.T) {
	x := autodiff.New(3)
	w := autodiff.New(-2)
	y := x.Mul(w).Add(x.PowScalar(2))

	y.Backward()

	gx, ok := x.Grad()
	assert.True(t, ok)
	assert.InDelta(t, 4, gx, 1e-6)

	gw, ok := w.Grad()
	assert.True(t, ok)
	assert.Equal(t, float32(3), gw)

	assert.Equal(t, autodiff.OpAdd, y.Op())
	assert.Equal(t, float32(3), y.Data())
}
