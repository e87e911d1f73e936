package pasta

import (
	"errors"
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// ISA selects the Montgomery multiplication routine used by both fields.
type ISA int

const (
	// ISAAuto picks a routine from the host CPU features.
	ISAAuto ISA = iota
	// ISAPortable uses the generic CIOS loop with no assumptions about the host.
	ISAPortable
	// ISAAccelerated uses the unrolled routine tuned for 64-bit hosts with
	// ADX and BMI2 wide-multiply support.
	ISAAccelerated
)

// ErrConflictingISA is returned when both the portable and the accelerated
// routine are requested at once.
var ErrConflictingISA = errors.New("pasta: cannot select both portable and accelerated arithmetic")

var currentISA ISA

func init() {
	SetISA(ISAAuto)
}

// String returns the name of the ISA selection.
func (i ISA) String() string {
	switch i {
	case ISAPortable:
		return "portable"
	case ISAAccelerated:
		return "accelerated"
	default:
		return "auto"
	}
}

// DetectISA returns the routine best suited to the host: accelerated on
// amd64 hosts reporting ADX and BMI2, portable everywhere else.
func DetectISA() ISA {
	if runtime.GOARCH == "amd64" && cpuid.CPU.Supports(cpuid.ADX, cpuid.BMI2) {
		return ISAAccelerated
	}
	return ISAPortable
}

// ResolveISA maps the portable/force-adx switches onto an ISA. Setting both
// is an error; setting neither falls back to host detection.
func ResolveISA(portable, forceADX bool) (ISA, error) {
	switch {
	case portable && forceADX:
		return ISAAuto, ErrConflictingISA
	case portable:
		return ISAPortable, nil
	case forceADX:
		return ISAAccelerated, nil
	default:
		return ISAAuto, nil
	}
}

// SetISA installs the multiplication routine for isa and returns the
// routine actually selected. It must be called before arithmetic runs
// concurrently, typically once at program start.
func SetISA(isa ISA) ISA {
	if isa == ISAAuto {
		isa = DetectISA()
	}
	switch isa {
	case ISAAccelerated:
		unrolled = true
	default:
		isa = ISAPortable
		unrolled = false
	}
	currentISA = isa
	return isa
}

// CurrentISA returns the routine in use.
func CurrentISA() ISA {
	return currentISA
}
