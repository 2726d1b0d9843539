package Boussinesq2D

import (
	"math"
	"time"

	"go.uber.org/zap"
)

// MaxTimestep caps any run regardless of the requested final time.
const MaxTimestep = 10_000_000

// Integrable is the contract the generic time loop drives. Update
// advances one step; Write emits diagnostics; Exit reports that the
// run should stop early (blow-up).
type Integrable interface {
	Update()
	GetTime() float64
	GetDt() float64
	Write()
	Exit() bool
}

// Integrate advances pde until maxTime, writing every saveInterval time
// units (0 disables writes). The interval check tolerates floating
// point drift in the accumulated time.
func Integrate(pde Integrable, maxTime, saveInterval float64) {
	var (
		dt    = pde.GetDt()
		eps   = dt * 1e-4
		start = time.Now()
	)
	zap.S().Infow("integration started",
		"time", pde.GetTime(), "dt", dt, "maxTime", maxTime)
	for step := 0; step < MaxTimestep; step++ {
		pde.Update()
		t := pde.GetTime()
		if saveInterval > 0 && math.Mod(t+eps, saveInterval) < dt {
			pde.Write()
		}
		if pde.Exit() {
			zap.S().Warnw("integration aborted", "time", t, "step", step)
			return
		}
		if t+eps >= maxTime {
			break
		}
	}
	zap.S().Infow("integration finished",
		"time", pde.GetTime(), "elapsed", time.Since(start))
}
