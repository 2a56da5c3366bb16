package core

type AppConfig interface {
	GetRuntimePath() string
	GetDatabasePath() string
	GetHandlersPath() string
	GetLogPath() string
	GetHistoryLimit() int
	GetMaxSourceDepth() int
	IsTranscriptEnabled() bool
}

type ConsoleConfig interface {
	GetPrompt() string
	IsPlain() bool
	UseAltScreen() bool
}
