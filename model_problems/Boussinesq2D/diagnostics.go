package Boussinesq2D

import (
	"fmt"
	"math"
	"path/filepath"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/flowphys/chebdns/utils"
)

// Diagnostics collects the time series a convection run is judged by:
// the plate Nusselt number, its volume-averaged counterpart, and the
// Reynolds number of the velocity field.
type Diagnostics struct {
	Time  []float64
	Nu    []float64
	NuVol []float64
	Re    []float64
}

func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

func (d *Diagnostics) Append(time, nu, nuVol, re float64) {
	d.Time = append(d.Time, time)
	d.Nu = append(d.Nu, nu)
	d.NuVol = append(d.NuVol, nuVol)
	d.Re = append(d.Re, re)
}

func (d *Diagnostics) Len() int { return len(d.Time) }

// SavePlots renders Nu(t) and Re(t) as PNGs under dir.
func (d *Diagnostics) SavePlots(dir string) (err error) {
	series := []struct {
		name string
		y    []float64
	}{
		{"nusselt", d.Nu},
		{"reynolds", d.Re},
	}
	for _, s := range series {
		p := plot.New()
		p.X.Label.Text = "time"
		p.Y.Label.Text = s.name
		pts := make(plotter.XYs, len(d.Time))
		for i := range d.Time {
			pts[i].X = d.Time[i]
			pts[i].Y = s.y[i]
		}
		line, errL := plotter.NewLine(pts)
		if errL != nil {
			return errL
		}
		p.Add(line)
		path := filepath.Join(dir, fmt.Sprintf("%s.png", s.name))
		if err = p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
			return
		}
	}
	return
}

// physTotalTemp returns the physical temperature including the lifted
// boundary profile; Temp.V must be current.
func (nv *Navier2D) physTotalTemp() (T utils.Matrix) {
	T = nv.Temp.V.Copy().Add(nv.Fieldbc.V)
	return
}

// xMean averages over the periodic direction, returning a profile in y.
func xMean(m utils.Matrix) (prof []float64) {
	var (
		n0, n1 = m.Dims()
	)
	prof = make([]float64, n1)
	for j := 0; j < n1; j++ {
		var sum float64
		for i := 0; i < n0; i++ {
			sum += m.At(i, j)
		}
		prof[j] = sum / float64(n0)
	}
	return
}

// volAvg integrates an x-averaged profile over the wall-normal
// direction with trapezoidal quadrature on the nonuniform grid and
// divides by the channel height.
func (nv *Navier2D) volAvg(m utils.Matrix) float64 {
	var (
		y      = nv.Temp.Space.Y.Coords().Data()
		height = y[len(y)-1] - y[0]
	)
	return integrate.Trapezoidal(y, xMean(m)) / height
}

// evalDiagnostics computes Nu, NuVol and Re from the current spectral
// state. Both Nusselt definitions reduce to 1 for the pure conduction
// profile.
func (nv *Navier2D) evalDiagnostics() (nu, nuVol, re float64) {
	var (
		height = 2 * nv.Scale[1]
		deltaT = 1.0
	)
	nv.Ux.Backward()
	nv.Uy.Backward()
	nv.Temp.Backward()

	// dT/dy of the total temperature, physical.
	dTdy := nv.Temp.Grad([2]int{0, 1}, nv.Scale)
	dTdy.Add(nv.Fieldbc.Grad([2]int{0, 1}, nv.Scale))
	nv.fbuf.Vhat.Assign(dTdy)
	nv.fbuf.Backward()
	dTdyPhys := nv.fbuf.V.Copy()

	// Plate Nusselt: horizontally averaged wall gradient at the hot
	// bottom plate.
	nu = -height / deltaT * xMean(dTdyPhys)[0]

	// Volume-averaged Nusselt from the heat flux balance.
	flux := nv.Uy.V.Copy().ElMul(nv.physTotalTemp()).Scale(1 / nv.kappa).Subtract(dTdyPhys)
	nuVol = height / deltaT * nv.volAvg(flux)

	// Reynolds number from the rms velocity and the half height.
	u2 := nv.Ux.V.Copy().ElMul(nv.Ux.V).Add(nv.Uy.V.Copy().ElMul(nv.Uy.V))
	re = math.Sqrt(nv.volAvg(u2)) * (height / 2) / nv.nu
	return
}
