package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sandevgo/debugtool/internal/core"
	"github.com/sandevgo/debugtool/pkg/log"
)

const (
	FPGAHandlerName = "FPGA Debug Handler"

	// maxDumpLength bounds rd_fpga_mem output.
	maxDumpLength = 64 * 1024
	dumpWidth     = 16
)

type FPGAHandler struct {
	bus   Bus
	verbs *verbTable
}

func NewFPGAHandler(bus Bus) *FPGAHandler {
	h := &FPGAHandler{bus: bus}

	t := newVerbTable()
	t.add("read_fpga", "read_fpga", "Read the FPGA status words", h.readStatus)
	t.add("write_fpga", "write_fpga", "Write the FPGA control block", h.writeControl)
	t.add("rd_fpga_reg", "rd_fpga_reg addr", "Read an FPGA register", h.readReg)
	t.add("wr_fpga_reg", "wr_fpga_reg addr val|file.bin", "Write an FPGA register", h.writeReg)
	t.add("rd_fpga_mem", "rd_fpga_mem addr length", "Dump FPGA memory", h.readMem)
	t.add("wr_fpga_mem", "wr_fpga_mem addr file.bin", "Load a binary file into FPGA memory", h.writeMem)
	h.verbs = t

	return h
}

func (h *FPGAHandler) Name() string {
	return FPGAHandlerName
}

func (h *FPGAHandler) Usage() []core.Usage {
	return h.verbs.usage()
}

func (h *FPGAHandler) Execute(ctx context.Context, command string) (core.Outcome, string) {
	return h.verbs.execute(ctx, command)
}

func (h *FPGAHandler) readStatus(ctx context.Context, args []string) (core.Outcome, string) {
	return core.OutcomeSuccess, joinInts([]uint32{0x1, 0x2, 0x3, 0x4, 0x5})
}

func (h *FPGAHandler) writeControl(ctx context.Context, args []string) (core.Outcome, string) {
	return core.OutcomeSuccess, "write fpga success"
}

func (h *FPGAHandler) readReg(ctx context.Context, args []string) (core.Outcome, string) {
	if len(args) != 1 {
		return syntaxError("rd_fpga_reg")
	}
	addr, err := parseWord(args[0])
	if err != nil {
		return failed("rd_fpga_reg: invalid address %q", args[0])
	}

	val, err := h.bus.ReadReg(addr)
	if err != nil {
		return failed("rd_fpga_reg: %v", err)
	}
	return core.OutcomeSuccess, fmt.Sprintf("read %08X: %08X", addr, val)
}

// writeReg accepts either a numeric value or a binary file holding it.
func (h *FPGAHandler) writeReg(ctx context.Context, args []string) (core.Outcome, string) {
	if len(args) != 2 {
		return syntaxError("wr_fpga_reg")
	}
	addr, err := parseWord(args[0])
	if err != nil {
		return failed("wr_fpga_reg: invalid address %q", args[0])
	}

	val, err := parseWord(args[1])
	if err != nil {
		val, err = readWordFile(args[1])
		if err != nil {
			log.FromCtx(ctx).Debug().Err(err).Str("arg", args[1]).Msg("value is neither a number nor a readable file")
			return failed("wr_fpga_reg: Cannot open file: %s", args[1])
		}
	}

	if err := h.bus.WriteReg(addr, val); err != nil {
		return failed("wr_fpga_reg: %v", err)
	}
	return core.OutcomeSuccess, fmt.Sprintf("write %08X: %08X", addr, val)
}

func (h *FPGAHandler) readMem(ctx context.Context, args []string) (core.Outcome, string) {
	if len(args) != 2 {
		return syntaxError("rd_fpga_mem")
	}
	addr, err := parseWord(args[0])
	if err != nil {
		return failed("rd_fpga_mem: invalid address %q", args[0])
	}
	length, err := strconv.ParseUint(args[1], 0, 32)
	if err != nil || length == 0 || length > maxDumpLength {
		return failed("rd_fpga_mem: invalid length %q", args[1])
	}

	data, err := h.bus.ReadMem(addr, int(length))
	if err != nil {
		return failed("rd_fpga_mem: %v", err)
	}
	return core.OutcomeSuccess, dump(addr, data)
}

func (h *FPGAHandler) writeMem(ctx context.Context, args []string) (core.Outcome, string) {
	if len(args) != 2 {
		return syntaxError("wr_fpga_mem")
	}
	addr, err := parseWord(args[0])
	if err != nil {
		return failed("wr_fpga_mem: invalid address %q", args[0])
	}

	data, err := readLimited(args[1], int64(h.bus.MemSize())-int64(addr))
	if errors.Is(err, errFileTooLarge) {
		return failed("wr_fpga_mem: %s does not fit in memory at %08X", args[1], addr)
	}
	if err != nil {
		log.FromCtx(ctx).Debug().Err(err).Str("path", args[1]).Msg("failed to read memory image")
		return failed("wr_fpga_mem: Cannot open file: %s", args[1])
	}
	if err := h.bus.WriteMem(addr, data); err != nil {
		return failed("wr_fpga_mem: %v", err)
	}
	return core.OutcomeSuccess, fmt.Sprintf("write %d bytes at %08X", len(data), addr)
}

var errFileTooLarge = errors.New("file too large")

// readLimited reads at most limit bytes of path. Larger files are rejected
// before their content is read.
func readLimited(path string, limit int64) ([]byte, error) {
	if limit < 0 {
		limit = 0
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if fi, err := f.Stat(); err == nil && fi.Mode().IsRegular() && fi.Size() > limit {
		return nil, errFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errFileTooLarge
	}
	return data, nil
}

func dump(addr uint32, data []byte) string {
	var sb strings.Builder
	for off := 0; off < len(data); off += dumpWidth {
		end := min(off+dumpWidth, len(data))
		if off > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%08X: ", addr+uint32(off))

		for i, b := range data[off:end] {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%02x", b)
		}
	}
	return sb.String()
}
