package device

import (
	"sync"

	"github.com/hashicorp/go-hclog"

	"pastamsm.mleku.dev/pasta"
)

// PastaContext is a device context over Pasta points and Montgomery scalars.
type PastaContext = Context[pasta.Affine, pasta.Jacobian, pasta.Element]

var (
	pallasOnce sync.Once
	pallasCtx  *PastaContext

	vestaOnce sync.Once
	vestaCtx  *PastaContext
)

// Pallas returns the process-wide device context for Pallas.
func Pallas() *PastaContext {
	pallasOnce.Do(func() {
		pallasCtx = NewContext(newKernel(pasta.Pallas), hclog.L())
	})
	return pallasCtx
}

// Vesta returns the process-wide device context for Vesta.
func Vesta() *PastaContext {
	vestaOnce.Do(func() {
		vestaCtx = NewContext(newKernel(pasta.Vesta), hclog.L())
	})
	return vestaCtx
}

// ForCurve returns the process-wide context of the given Pasta curve.
func ForCurve(c *pasta.Curve) *PastaContext {
	if c == pasta.Vesta {
		return Vesta()
	}
	return Pallas()
}
