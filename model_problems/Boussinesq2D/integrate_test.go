package Boussinesq2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakePDE counts the calls the time loop makes.
type fakePDE struct {
	dt       float64
	time     float64
	updates  int
	writes   int
	exitStep int // abort after this many updates, 0 disables
}

func (f *fakePDE) Update()          { f.updates++; f.time += f.dt }
func (f *fakePDE) GetTime() float64 { return f.time }
func (f *fakePDE) GetDt() float64   { return f.dt }
func (f *fakePDE) Write()           { f.writes++ }
func (f *fakePDE) Exit() bool       { return f.exitStep > 0 && f.updates >= f.exitStep }

func TestIntegrate(t *testing.T) {
	pde := &fakePDE{dt: 0.1}
	Integrate(pde, 1.0, 0.5)
	assert.Equal(t, 10, pde.updates)
	assert.Equal(t, 2, pde.writes)
}

func TestIntegrateNoWrites(t *testing.T) {
	pde := &fakePDE{dt: 0.1}
	Integrate(pde, 0.55, 0)
	assert.Equal(t, 6, pde.updates)
	assert.Equal(t, 0, pde.writes)
}

func TestIntegrateAbort(t *testing.T) {
	pde := &fakePDE{dt: 0.1, exitStep: 3}
	Integrate(pde, 100, 0)
	assert.Equal(t, 3, pde.updates)
}
