package source

import (
	"path/filepath"
)

// Resolver maps paths named by `source` onto the filesystem. Relative paths
// are taken from the directory of the file that contains them, or from the
// working directory when typed interactively.
type Resolver struct {
	workDir string
}

func NewResolver(workDir string) *Resolver {
	return &Resolver{workDir: filepath.Clean(workDir)}
}

func (r *Resolver) WorkDir() string {
	return r.workDir
}

// Resolve never touches the filesystem; callers check existence.
// An empty currentFile means the reference came from interactive input.
func (r *Resolver) Resolve(requested, currentFile string) string {
	requested = filepath.Clean(requested)
	if filepath.IsAbs(requested) {
		return requested
	}

	base := r.workDir
	if currentFile != "" {
		base = filepath.Dir(currentFile)
	}
	return filepath.Join(base, requested)
}
