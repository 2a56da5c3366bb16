package handlers

import (
	"github.com/sandevgo/debugtool/internal/core"
)

// defaultMemSize is the simulated FPGA memory window.
const defaultMemSize = 1 << 20

// NewHandlers returns the built-in handlers in dispatch priority order.
func NewHandlers() []core.Handler {
	return []core.Handler{
		NewFPGAHandler(NewMemoryBus(defaultMemSize)),
		NewARMHandler(),
	}
}
