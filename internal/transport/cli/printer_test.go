package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sandevgo/debugtool/internal/core"
	"github.com/sandevgo/debugtool/internal/service/dispatcher"
)

func TestPrinter_Plain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)

	p.Emit(core.Echo("read_fpga"))
	p.Emit(core.Stdout("1 2 3 4 5"))
	p.Emit(core.Stderr("bogus: Command not found"))
	p.Print("")
	p.Print("done")

	assert.Equal(t, "> read_fpga\n1 2 3 4 5\nbogus: Command not found\n\ndone\n", buf.String())
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestPrinter_Pump(t *testing.T) {
	buf := &syncBuffer{}
	p := NewPrinter(buf, true)
	stream := dispatcher.NewEventStream()
	stream.Emit(core.Echo("read_arm"))
	stream.Emit(core.Stdout("1 2 3 4 5"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Pump(ctx, stream)
		close(done)
	}()

	want := "> read_arm\n1 2 3 4 5\n"
	assert.Eventually(t, func() bool { return buf.String() == want }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
