package test

import (
	"path/filepath"
	"runtime"
)

// ProjectRoot returns the repository root, two levels up from this file.
func ProjectRoot() string {
	_, b, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(b), "../..")
}

// EnvExample is the path of the sample environment file shipped with the repo.
func EnvExample() string {
	return filepath.Join(ProjectRoot(), ".env.example")
}
