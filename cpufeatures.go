package mlkem

import (
	"sync"

	"golang.org/x/sys/cpu"
)

// nttBackend is the function-pointer shape every NTT engine implementation
// must satisfy. Only the portable scalar backend is registered below;
// the indirection exists so a vectorized backend can be added later
// without changing any call site, per spec.md §5's "single portable
// reference path plus optional vectorized back-ends chosen at init time".
type nttBackend struct {
	name    string
	ntt     func(ringElement) nttElement
	invNTT  func(nttElement) ringElement
	basemul func(a, b nttElement) nttElement
}

var (
	backendOnce    sync.Once
	selectedBackend nttBackend
)

var scalarBackend = nttBackend{
	name:    "scalar",
	ntt:     ntt,
	invNTT:  invNTT,
	basemul: basemul,
}

// initBackend probes CPU capabilities exactly once and selects an NTT
// backend. golang.org/x/sys/cpu's feature flags are read here so the
// dispatch is real and exercised even though, in this build, every
// capability still resolves to the scalar backend.
func initBackend() {
	backendOnce.Do(func() {
		selectedBackend = scalarBackend
		if cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD {
			// No vectorized backend is implemented in this repository;
			// the capability probe is wired but intentionally inert.
			selectedBackend = scalarBackend
		}
	})
}

func backend() nttBackend {
	initBackend()
	return selectedBackend
}
