package handlers

import (
	"context"

	"github.com/sandevgo/debugtool/internal/core"
)

const ARMHandlerName = "ARM Debug Handler"

type ARMHandler struct {
	verbs *verbTable
}

func NewARMHandler() *ARMHandler {
	h := &ARMHandler{}

	t := newVerbTable()
	t.add("read_arm", "read_arm", "Read the ARM status words", h.readStatus)
	t.add("write_arm", "write_arm", "Write the ARM control block", h.writeControl)
	h.verbs = t

	return h
}

func (h *ARMHandler) Name() string {
	return ARMHandlerName
}

func (h *ARMHandler) Usage() []core.Usage {
	return h.verbs.usage()
}

func (h *ARMHandler) Execute(ctx context.Context, command string) (core.Outcome, string) {
	return h.verbs.execute(ctx, command)
}

func (h *ARMHandler) readStatus(ctx context.Context, args []string) (core.Outcome, string) {
	return core.OutcomeSuccess, joinInts([]uint32{0x1, 0x2, 0x3, 0x4, 0x5})
}

func (h *ARMHandler) writeControl(ctx context.Context, args []string) (core.Outcome, string) {
	return core.OutcomeSuccess, "write arm success"
}
