package installer

type InstallState struct {
	RuntimePath string
	EnvVars     map[string]string

	// Handlers holds the chosen startup state per handler name.
	Handlers map[string]bool
}

func NewInstallState(runtimePath string) *InstallState {
	return &InstallState{
		RuntimePath: runtimePath,
		EnvVars:     make(map[string]string),
		Handlers:    make(map[string]bool),
	}
}
