package transcript

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/sandevgo/debugtool/internal/core"
	"github.com/sandevgo/debugtool/pkg/conv"
)

var ErrNoTranscript = errors.New("no transcript recorded")

type Exporter struct {
	repo core.TranscriptRepository
}

func NewExporter(repo core.TranscriptRepository) *Exporter {
	return &Exporter{repo: repo}
}

// Load returns the events of sessionID, or of the latest session when
// sessionID is empty.
func (e *Exporter) Load(ctx context.Context, sessionID string) (string, []core.Event, error) {
	if sessionID == "" {
		last, err := e.repo.LastSession(ctx)
		if err != nil {
			return "", nil, err
		}
		if last == "" {
			return "", nil, ErrNoTranscript
		}
		sessionID = last
	}

	stored, err := e.repo.GetEvents(ctx, sessionID)
	if err != nil {
		return "", nil, err
	}
	if len(stored) == 0 {
		return "", nil, fmt.Errorf("%w: session %s", ErrNoTranscript, sessionID)
	}

	events := make([]core.Event, 0, len(stored))
	for _, s := range stored {
		events = append(events, core.Event{Kind: s.Kind, Text: s.Text})
	}
	return sessionID, events, nil
}

// RenderHTML formats events as a rich text document: commands in blue bold,
// errors in red bold. Only the event body goes through the sanitizer; the
// document shell around it is fixed.
func RenderHTML(title string, events []core.Event) string {
	var body strings.Builder
	for _, ev := range events {
		body.WriteString(FormatEvent(ev))
		body.WriteString("\n")
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>")
	sb.WriteString(html.EscapeString(title))
	sb.WriteString("</title></head><body>\n")
	sb.WriteString(conv.SanitizeHTML(body.String()))
	sb.WriteString("</body></html>\n")
	return sb.String()
}

// RenderText is the terminal rendition of RenderHTML.
func RenderText(events []core.Event) (string, error) {
	var sb strings.Builder
	for _, ev := range events {
		sb.WriteString(FormatEvent(ev))
	}
	return conv.HTMLToText(conv.SanitizeHTML(sb.String()))
}

func FormatEvent(ev core.Event) string {
	text := strings.ReplaceAll(html.EscapeString(ev.Text), "\n", "<br />")
	switch ev.Kind {
	case core.EventEcho:
		return fmt.Sprintf(`<font color="blue"><b>&gt; %s</b></font><br />`, text)
	case core.EventStderr:
		return fmt.Sprintf(`<font color="red"><b>%s</b></font><br /><br />`, text)
	default:
		return text + "<br />"
	}
}
