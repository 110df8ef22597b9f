// Package version reports build metadata injected via ldflags:
//
//	go build -ldflags "-X github.com/example/hrdesk/internal/version.Commit=$(git rev-parse HEAD)"
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns a one-line description of the running binary.
func String() string {
	return fmt.Sprintf("hrdesk %s (commit: %s, built: %s, %s)", Version, short(Commit), BuildTime, runtime.Version())
}

func short(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
