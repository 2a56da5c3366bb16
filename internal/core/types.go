package core

const (
	ToolName       = "DebugTool"
	ToolVersion    = "0.1.0"
	ToolRepository = "https://github.com/sandevgo/debugtool"
)

// Verbs handled before a command reaches a handler.
const (
	VerbSource = "source"
	VerbExit   = "exit"
	VerbClear  = "clear"
	VerbHelp   = "help"

	CommentPrefix = "#"
)

type WorkKind int

const (
	WorkInline WorkKind = iota
	WorkFile
)

func (k WorkKind) String() string {
	switch k {
	case WorkInline:
		return "inline"
	case WorkFile:
		return "file"
	default:
		return "unknown"
	}
}

// WorkItem is a unit queued for the dispatcher: either a literal command or a file to expand.
type WorkItem struct {
	Kind  WorkKind
	Value string
}

func InlineItem(text string) WorkItem {
	return WorkItem{Kind: WorkInline, Value: text}
}

func FileItem(path string) WorkItem {
	return WorkItem{Kind: WorkFile, Value: path}
}

type EventKind int

const (
	EventEcho EventKind = iota
	EventStdout
	EventStderr
)

func (k EventKind) String() string {
	switch k {
	case EventEcho:
		return "echo"
	case EventStdout:
		return "stdout"
	case EventStderr:
		return "stderr"
	default:
		return "unknown"
	}
}

// ParseEventKind is the inverse of EventKind.String.
func ParseEventKind(s string) (EventKind, bool) {
	switch s {
	case "echo":
		return EventEcho, true
	case "stdout":
		return EventStdout, true
	case "stderr":
		return EventStderr, true
	default:
		return 0, false
	}
}

// Event is a single piece of categorized output produced by the dispatcher.
type Event struct {
	Kind EventKind
	Text string
}

func Echo(text string) Event   { return Event{Kind: EventEcho, Text: text} }
func Stdout(text string) Event { return Event{Kind: EventStdout, Text: text} }
func Stderr(text string) Event { return Event{Kind: EventStderr, Text: text} }
