package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandevgo/debugtool/internal/core"
)

type action func(ctx context.Context, args []string) (core.Outcome, string)

type verb struct {
	usage core.Usage
	run   action
}

// verbTable maps the first word of a command onto an action.
type verbTable struct {
	verbs map[string]verb
	order []string
}

func newVerbTable() *verbTable {
	return &verbTable{verbs: make(map[string]verb)}
}

func (t *verbTable) add(name, syntax, summary string, run action) {
	t.verbs[name] = verb{
		usage: core.Usage{Syntax: syntax, Summary: summary},
		run:   run,
	}
	t.order = append(t.order, name)
}

func (t *verbTable) execute(ctx context.Context, command string) (core.Outcome, string) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return core.OutcomeNotFound, ""
	}
	v, ok := t.verbs[fields[0]]
	if !ok {
		return core.OutcomeNotFound, ""
	}
	return v.run(ctx, fields[1:])
}

func (t *verbTable) usage() []core.Usage {
	res := make([]core.Usage, 0, len(t.order))
	for _, name := range t.order {
		res = append(res, t.verbs[name].usage)
	}
	return res
}

func syntaxError(verb string) (core.Outcome, string) {
	return core.OutcomeFailed, verb + ": syntax error"
}

func failed(format string, args ...any) (core.Outcome, string) {
	return core.OutcomeFailed, fmt.Sprintf(format, args...)
}

func parseWord(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

func joinInts(values []uint32) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatUint(uint64(v), 10)
	}
	return strings.Join(parts, " ")
}
