package Boussinesq2D

import (
	"math"
	"sync"
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
	"go.uber.org/zap"

	"github.com/flowphys/chebdns/bases"
	"github.com/flowphys/chebdns/field"
	"github.com/flowphys/chebdns/restart"
	"github.com/flowphys/chebdns/solver"
	"github.com/flowphys/chebdns/utils"
)

// Navier2D integrates Rayleigh-Benard convection in a channel that is
// periodic in x and wall-bounded in y. Velocity and temperature live on
// Fourier x ChebDirichlet spaces; the pressure is carried on the pure
// Chebyshev space with a ChebNeumann pseudo-pressure for the projection
// step. Time stepping is semi-implicit: explicit convection, implicit
// diffusion through Helmholtz solves, and a pressure Poisson solve that
// projects the velocity onto divergence-free fields.
//
// The inhomogeneous temperature boundary condition (hot bottom plate at
// +0.5, cold top at -0.5) is lifted into an explicit linear-profile
// field so that the unknown temperature stays homogeneous Dirichlet.
type Navier2D struct {
	// Input parameters
	Nx, Ny       int
	Ra, Pr       float64
	Dt           float64
	Scale        [2]float64
	FinalTime    float64
	SaveInterval float64

	nu, kappa float64
	time      float64

	Ux, Uy, Temp *field.Field2C
	Pres, Pseu   *field.Field2C
	Fieldbc      *field.Field2C
	fbuf         *field.Field2C // Fourier x Chebyshev work field

	solverUx, solverUy *solver.Hholtz
	solverTemp         *solver.Hholtz
	solverPres         *solver.Poisson

	Diag *Diagnostics

	showGraph  bool
	graphDelay []time.Duration
	chart      *chart2d.Chart2D
	colorMap   *utils2.ColorMap
	PlotOnce   sync.Once
}

func NewNavier2D(nx, ny int, ra, pr, dt, aspect float64) (nv *Navier2D) {
	var (
		scale  = [2]float64{aspect, 1.0}
		height = 2 * scale[1]
		// Nondimensionalization with the free-fall velocity: both
		// diffusivities shrink like 1/sqrt(Ra).
		nu    = math.Sqrt(pr / (ra / (height * height * height)))
		kappa = math.Sqrt(1 / (pr * ra / (height * height * height)))
	)
	var (
		fx = bases.NewFourierR2C(nx)
		cd = bases.NewChebDirichlet(ny)
		cn = bases.NewChebNeumann(ny)
		ch = bases.NewChebyshev(ny)
	)
	nv = &Navier2D{
		Nx:    nx,
		Ny:    ny,
		Ra:    ra,
		Pr:    pr,
		Dt:    dt,
		Scale: scale,
		nu:    nu,
		kappa: kappa,

		Ux:      field.NewField2C(field.NewSpace2C(fx, cd)),
		Uy:      field.NewField2C(field.NewSpace2C(fx, cd)),
		Temp:    field.NewField2C(field.NewSpace2C(fx, cd)),
		Pres:    field.NewField2C(field.NewSpace2C(fx, ch)),
		Pseu:    field.NewField2C(field.NewSpace2C(fx, cn)),
		Fieldbc: field.NewField2C(field.NewSpace2C(fx, ch)),
		fbuf:    field.NewField2C(field.NewSpace2C(fx, ch)),

		solverUx: solver.NewHholtz([]bases.Operator{fx, cd},
			[2]float64{dt * nu / (scale[0] * scale[0]), dt * nu / (scale[1] * scale[1])}),
		solverUy: solver.NewHholtz([]bases.Operator{fx, cd},
			[2]float64{dt * nu / (scale[0] * scale[0]), dt * nu / (scale[1] * scale[1])}),
		solverTemp: solver.NewHholtz([]bases.Operator{fx, cd},
			[2]float64{dt * kappa / (scale[0] * scale[0]), dt * kappa / (scale[1] * scale[1])}),
		solverPres: solver.NewPoisson([]bases.Operator{fx, cn},
			[2]float64{1 / (scale[0] * scale[0]), 1 / (scale[1] * scale[1])}),

		Diag: NewDiagnostics(),
	}
	nv.setTemperatureBC()
	return
}

// setTemperatureBC lifts the plate temperatures into the linear
// conduction profile T_bc(y) = -y/2.
func (nv *Navier2D) setTemperatureBC() {
	var (
		y      = nv.Fieldbc.Space.Y.Coords()
		n0, n1 = nv.Fieldbc.Space.ShapePhys()
	)
	for i := 0; i < n0; i++ {
		for j := 0; j < n1; j++ {
			nv.Fieldbc.V.Set(i, j, -y.AtVec(j)/2)
		}
	}
	nv.Fieldbc.Forward()
}

// normCoords maps the physical coordinates of f onto the unit square,
// first to last grid point per axis.
func normCoords(f *field.Field2C) (x, y []float64) {
	var (
		cx = f.Space.X.Coords()
		cy = f.Space.Y.Coords()
	)
	x = make([]float64, cx.Len())
	y = make([]float64, cy.Len())
	for i := range x {
		x[i] = cx.AtVec(i) / cx.AtVec(cx.Len()-1)
	}
	for j := range y {
		y[j] = (cy.AtVec(j) - cy.AtVec(0)) / (cy.AtVec(cy.Len()-1) - cy.AtVec(0))
	}
	return
}

func applySinCos(f *field.Field2C, amp, m, n float64) {
	x, y := normCoords(f)
	for i := range x {
		for j := range y {
			f.V.Set(i, j, amp*math.Sin(m*math.Pi*x[i])*math.Cos(n*math.Pi*y[j]))
		}
	}
	f.Forward()
}

func applyCosSin(f *field.Field2C, amp, m, n float64) {
	x, y := normCoords(f)
	for i := range x {
		for j := range y {
			f.V.Set(i, j, amp*math.Cos(m*math.Pi*x[i])*math.Sin(n*math.Pi*y[j]))
		}
	}
	f.Forward()
}

// SetVelocity seeds a solenoidal-ish perturbation with m half waves in
// x and n in y; the composite projection enforces the wall values.
func (nv *Navier2D) SetVelocity(amp, m, n float64) {
	applySinCos(nv.Ux, amp, m, n)
	applyCosSin(nv.Uy, -amp, m, n)
}

// SetTemperature seeds a temperature perturbation about the conduction
// profile.
func (nv *Navier2D) SetTemperature(amp, m, n float64) {
	applyCosSin(nv.Temp, -amp, m, n)
}

// convTerm returns u.grad(f) in orthogonal spectral space. Derivatives
// are taken spectrally, the products in physical space on the work
// field, matching the pseudospectral treatment of the nonlinearity.
// Velocities must hold current physical values.
func (nv *Navier2D) convTerm(f *field.Field2C, withBC bool) (conv utils.CMatrix) {
	var (
		dx = f.Grad([2]int{1, 0}, nv.Scale)
		dy = f.Grad([2]int{0, 1}, nv.Scale)
	)
	if withBC {
		dx.Add(nv.Fieldbc.Grad([2]int{1, 0}, nv.Scale))
		dy.Add(nv.Fieldbc.Grad([2]int{0, 1}, nv.Scale))
	}
	nv.fbuf.Vhat.Assign(dx)
	nv.fbuf.Backward()
	dxPhys := nv.fbuf.V.Copy()
	nv.fbuf.Vhat.Assign(dy)
	nv.fbuf.Backward()
	dyPhys := nv.fbuf.V.Copy()

	dxPhys.ElMul(nv.Ux.V)
	dyPhys.ElMul(nv.Uy.V)
	dxPhys.Add(dyPhys)

	nv.fbuf.V.M.Copy(dxPhys.M)
	nv.fbuf.Forward()
	conv = nv.fbuf.Vhat.Copy()
	return
}

// divergence returns du/dx + dv/dy in orthogonal spectral space.
func (nv *Navier2D) divergence() (div utils.CMatrix) {
	div = nv.Ux.Grad([2]int{1, 0}, nv.Scale)
	div.Add(nv.Uy.Grad([2]int{0, 1}, nv.Scale))
	return
}

func (nv *Navier2D) solveUx(presGradX utils.CMatrix) {
	rhs := nv.Ux.ToOrtho()
	rhs.AddScaled(presGradX, complex(-nv.Dt, 0))
	rhs.AddScaled(nv.convTerm(nv.Ux, false), complex(-nv.Dt, 0))
	nv.Ux.Vhat.Assign(nv.solverUx.Solve(rhs))
}

func (nv *Navier2D) solveUy(presGradY, buoyancy utils.CMatrix) {
	rhs := nv.Uy.ToOrtho()
	rhs.AddScaled(presGradY, complex(-nv.Dt, 0))
	rhs.AddScaled(nv.convTerm(nv.Uy, false), complex(-nv.Dt, 0))
	rhs.AddScaled(buoyancy, complex(nv.Dt, 0))
	nv.Uy.Vhat.Assign(nv.solverUy.Solve(rhs))
}

func (nv *Navier2D) solvePres(div utils.CMatrix) {
	nv.Pseu.Vhat.Assign(nv.solverPres.Solve(div))
	nv.Pseu.Vhat.Set(0, 0, 0)
}

// projectVelocity removes the gradient part of the intermediate
// velocity, u <- u - c*grad(pseudo-pressure).
func (nv *Navier2D) projectVelocity(c float64) {
	var (
		dpx    = nv.Pseu.Grad([2]int{1, 0}, nv.Scale)
		dpy    = nv.Pseu.Grad([2]int{0, 1}, nv.Scale)
		m0, m1 = nv.Ux.Space.ShapeSpec()
		buf    = utils.NewCMatrix(m0, m1)
	)
	nv.Ux.Space.Y.FromParentC(dpx, buf, 1)
	nv.Ux.Vhat.AddScaled(buf, complex(-c, 0))
	nv.Uy.Space.Y.FromParentC(dpy, buf, 1)
	nv.Uy.Vhat.AddScaled(buf, complex(-c, 0))
}

// updatePres accumulates the rotational pressure update.
func (nv *Navier2D) updatePres(div utils.CMatrix) {
	nv.Pres.Vhat.AddScaled(div, complex(-nv.nu, 0))
	nv.Pres.Vhat.AddScaled(nv.Pseu.ToOrtho(), complex(1/nv.Dt, 0))
}

func (nv *Navier2D) solveTemp() {
	rhs := nv.Temp.ToOrtho()
	rhs.AddScaled(nv.convTerm(nv.Temp, true), complex(-nv.Dt, 0))
	// Diffusion of the lifted boundary field; identically zero for the
	// linear profile but kept for general lifts.
	bc := nv.Fieldbc.Grad([2]int{2, 0}, nv.Scale)
	bc.Add(nv.Fieldbc.Grad([2]int{0, 2}, nv.Scale))
	rhs.AddScaled(bc, complex(nv.Dt*nv.kappa, 0))
	nv.Temp.Vhat.Assign(nv.solverTemp.Solve(rhs))
}

// Update advances the solution by one time step.
func (nv *Navier2D) Update() {
	buoyancy := nv.Temp.ToOrtho()
	buoyancy.Add(nv.Fieldbc.ToOrtho())

	nv.Ux.Backward()
	nv.Uy.Backward()
	nv.Temp.Backward()

	presGradX := nv.Pres.Grad([2]int{1, 0}, nv.Scale)
	presGradY := nv.Pres.Grad([2]int{0, 1}, nv.Scale)

	nv.solveUx(presGradX)
	nv.solveUy(presGradY, buoyancy)

	div := nv.divergence()
	nv.solvePres(div)
	nv.projectVelocity(1.0)
	nv.updatePres(div)

	nv.solveTemp()

	nv.time += nv.Dt
}

func (nv *Navier2D) GetTime() float64 { return nv.time }
func (nv *Navier2D) GetDt() float64   { return nv.Dt }

// Exit reports blow-up: a NaN in the divergence norm ends the run.
func (nv *Navier2D) Exit() bool {
	div := nv.divergence()
	norm := div.L2Norm()
	if math.IsNaN(norm) {
		zap.S().Errorw("simulation diverged", "time", nv.time)
		return true
	}
	return false
}

// Write appends diagnostics for the current state and logs them.
func (nv *Navier2D) Write() {
	nu, nuVol, re := nv.evalDiagnostics()
	nv.Diag.Append(nv.time, nu, nuVol, re)
	zap.S().Infow("diagnostics",
		"time", nv.time, "Nu", nu, "NuVol", nuVol, "Re", re)
	nv.Plot()
}

// WriteToFile persists the spectral state and parameters for restarts.
func (nv *Navier2D) WriteToFile(path string) (err error) {
	st := restart.NewStore()
	st.SetField("temp", nv.Temp.Vhat)
	st.SetField("ux", nv.Ux.Vhat)
	st.SetField("uy", nv.Uy.Vhat)
	st.SetField("pres", nv.Pres.Vhat)
	st.SetScalar("time", nv.time)
	st.SetScalar("ra", nv.Ra)
	st.SetScalar("pr", nv.Pr)
	st.SetScalar("nu", nv.nu)
	st.SetScalar("kappa", nv.kappa)
	return st.Write(path)
}

// Read restores the spectral state written by WriteToFile; grid sizes
// must match the receiver's.
func (nv *Navier2D) Read(path string) (err error) {
	st, err := restart.Read(path)
	if err != nil {
		return
	}
	for name, dst := range map[string]*field.Field2C{
		"temp": nv.Temp, "ux": nv.Ux, "uy": nv.Uy, "pres": nv.Pres,
	} {
		m, errF := st.GetField(name)
		if errF != nil {
			return errF
		}
		dst.Vhat.Assign(m)
		dst.Backward()
	}
	if nv.time, err = st.GetScalar("time"); err != nil {
		return
	}
	zap.S().Infow("restart file loaded", "path", path, "time", nv.time)
	return
}

// Run integrates to finalTime, optionally animating the horizontally
// averaged temperature profile.
func (nv *Navier2D) Run(finalTime float64, showGraph bool, graphDelay ...time.Duration) {
	nv.showGraph = showGraph
	nv.graphDelay = graphDelay
	nv.FinalTime = finalTime
	Integrate(nv, finalTime, nv.SaveInterval)
}

// Plot renders the horizontally averaged total temperature against y.
func (nv *Navier2D) Plot() {
	if !nv.showGraph {
		return
	}
	var (
		n0, n1 = nv.Temp.Space.ShapePhys()
		y      = nv.Temp.Space.Y.Coords()
	)
	nv.PlotOnce.Do(func() {
		nv.chart = chart2d.NewChart2D(1280, 1024, float32(y.Min()), float32(y.Max()), -0.6, 0.6)
		nv.colorMap = utils2.NewColorMap(-1, 1, 1)
		go nv.chart.Plot()
	})
	nv.Temp.Backward()
	var (
		prof = make([]float64, n1)
	)
	for j := 0; j < n1; j++ {
		var sum float64
		for i := 0; i < n0; i++ {
			sum += nv.Temp.V.At(i, j) + nv.Fieldbc.V.At(i, j)
		}
		prof[j] = sum / float64(n0)
	}
	if err := nv.chart.AddSeries("Tmean", y.Data(), prof,
		chart2d.NoGlyph, chart2d.Solid, nv.colorMap.GetRGB(0)); err != nil {
		panic("unable to add graph series")
	}
	if len(nv.graphDelay) != 0 {
		time.Sleep(nv.graphDelay[0])
	}
}
