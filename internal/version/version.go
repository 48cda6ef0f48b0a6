// Package version holds build metadata for the foodorder binary.
package version

// Overridden at build time:
// go build -ldflags "-X foodorder/internal/version.Version=0.4.0 -X foodorder/internal/version.Commit=$(git rev-parse HEAD)"
var (
	Version   = "0.3.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info returns the version with a short commit suffix when one is known.
func Info() string {
	if Commit == "unknown" || len(Commit) <= 7 {
		return Version
	}
	return Version + " (" + Commit[:7] + ")"
}

// Full returns the multi-line version banner printed by `foodorder version`.
func Full() string {
	return "foodorder " + Version + "\n" +
		"commit: " + Commit + "\n" +
		"built:  " + BuildDate
}
