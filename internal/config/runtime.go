package config

import (
	"os"
	"path/filepath"
)

const defaultRuntimePath = ".debugtool"

// GetRuntimePath is available before any config is parsed, so the .env file
// inside the runtime directory can be loaded first.
func GetRuntimePath() string {
	return ResolveRuntimePath(os.Getenv("DTOOL_RUNTIME_PATH"))
}

// ResolveRuntimePath places relative runtime paths under the home directory.
func ResolveRuntimePath(path string) string {
	if path == "" {
		path = defaultRuntimePath
	}

	if !filepath.IsAbs(path) {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		path = filepath.Join(home, path)
	}
	return path
}
