// Package paths resolves the on-disk locations the server uses, all relative
// to a project root directory.
package paths

import (
	"os"
	"path/filepath"
)

const (
	// StateDirName holds config.json and logs/ under the project root.
	StateDirName = ".foodorder"
	// ConfigFileName is the viper config file inside StateDirName.
	ConfigFileName = "config.json"
	// RootEnvVar overrides the project root.
	RootEnvVar = "FOODORDER_ROOT"
)

// Root returns the project root: explicit if non-empty, then $FOODORDER_ROOT,
// then the working directory.
func Root(explicit string) (string, error) {
	root := explicit
	if root == "" {
		root = os.Getenv(RootEnvVar)
	}
	if root == "" {
		return os.Getwd()
	}
	return filepath.Abs(root)
}

// StateDir returns <root>/.foodorder.
func StateDir(root string) string {
	return filepath.Join(root, StateDirName)
}

// ConfigPath returns <root>/.foodorder/config.json.
func ConfigPath(root string) string {
	return filepath.Join(StateDir(root), ConfigFileName)
}

// LogPath returns the default server log file, <root>/.foodorder/logs/server.log.
func LogPath(root string) string {
	return filepath.Join(StateDir(root), "logs", "server.log")
}

// Resolve makes p absolute against root. Absolute paths are returned cleaned.
func Resolve(root, p string) string {
	if p == "" {
		return root
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, filepath.FromSlash(p))
}

// EnsureStateDir creates <root>/.foodorder if needed and returns it.
func EnsureStateDir(root string) (string, error) {
	dir := StateDir(root)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
