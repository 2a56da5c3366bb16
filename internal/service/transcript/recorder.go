package transcript

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sandevgo/debugtool/internal/core"
	"github.com/sandevgo/debugtool/pkg/log"
)

// Recorder is a ResultSink that stores every event of one console session.
type Recorder struct {
	ctx       context.Context
	repo      core.TranscriptRepository
	sessionID string

	mu  sync.Mutex
	seq int
}

func NewRecorder(ctx context.Context, repo core.TranscriptRepository) *Recorder {
	return &Recorder{
		ctx:       ctx,
		repo:      repo,
		sessionID: uuid.NewString(),
	}
}

func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Emit never fails: storage errors are logged and the event is dropped from
// the transcript only.
func (r *Recorder) Emit(ev core.Event) {
	r.mu.Lock()
	seq := r.seq
	r.seq++
	r.mu.Unlock()

	if err := r.repo.AddEvent(r.ctx, r.sessionID, seq, ev); err != nil {
		log.FromCtx(r.ctx).Warn().Err(err).
			Str("session", r.sessionID).
			Int("seq", seq).
			Msg("failed to record transcript event")
	}
}
