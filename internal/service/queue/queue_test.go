package queue

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_FIFO(t *testing.T) {
	q := New[string]()
	q.Push("a")
	q.Push("b")
	q.Push("c")
	require.Equal(t, 3, q.Len())

	ctx := context.Background()
	for _, want := range []string{"a", "b", "c"} {
		got, err := q.Pop(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueue_PopBlocksUntilPush(t *testing.T) {
	q := New[int]()
	got := make(chan int, 1)

	go func() {
		v, err := q.Pop(context.Background())
		if err == nil {
			got <- v
		}
	}()

	select {
	case <-got:
		t.Fatal("pop returned before push")
	case <-time.After(20 * time.Millisecond):
	}

	q.Push(7)
	select {
	case v := <-got:
		assert.Equal(t, 7, v)
	case <-time.After(time.Second):
		t.Fatal("pop did not wake up after push")
	}
}

func TestQueue_PopCancelled(t *testing.T) {
	q := New[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := q.Pop(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQueue_ManyProducers(t *testing.T) {
	q := New[int]()
	const producers, perProducer = 8, 100

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(p*perProducer + i)
			}
		}(p)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	seen := make([]int, 0, producers*perProducer)
	lastPerProducer := make(map[int]int)
	for len(seen) < producers*perProducer {
		v, err := q.Pop(ctx)
		require.NoError(t, err)

		p := v / perProducer
		if last, ok := lastPerProducer[p]; ok {
			assert.Greater(t, v, last, "items of one producer stay in push order")
		}
		lastPerProducer[p] = v
		seen = append(seen, v)
		q.Done()
	}
	wg.Wait()

	sort.Ints(seen)
	for i, v := range seen {
		require.Equal(t, i, v)
	}
}

func TestQueue_Wait(t *testing.T) {
	q := New[int]()
	ctx := context.Background()

	require.NoError(t, q.Wait(ctx), "empty queue is already drained")

	q.Push(1)
	q.Push(2)

	done := make(chan error, 1)
	go func() { done <- q.Wait(ctx) }()

	_, err := q.Pop(ctx)
	require.NoError(t, err)
	q.Done()

	select {
	case <-done:
		t.Fatal("wait returned with work still pending")
	case <-time.After(20 * time.Millisecond):
	}

	_, err = q.Pop(ctx)
	require.NoError(t, err)

	select {
	case <-done:
		t.Fatal("wait returned before the last item was done")
	case <-time.After(20 * time.Millisecond):
	}

	q.Done()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("wait did not return")
	}
}

func TestQueue_WaitCancelled(t *testing.T) {
	q := New[int]()
	q.Push(1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Wait(ctx), context.DeadlineExceeded)
}
