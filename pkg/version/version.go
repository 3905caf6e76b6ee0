// Package version exposes the application version derived from build metadata.
//
// Priority: -ldflags override > VCS info from debug.BuildInfo > "dev" fallback.
package version

import "runtime/debug"

// AppName is the application name used in version strings and log records.
const AppName = "customer-service"

// gitCommitOverride is set via -ldflags at build time for container builds
// where .git is unavailable.
var gitCommitOverride string

// GitCommit is the short git commit hash (8 chars), or "dev" when build info
// is unavailable (go test, non-git builds).
var GitCommit = resolveCommit(gitCommitOverride, readRevision())

func readRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

func resolveCommit(override, revision string) string {
	v := override
	if v == "" {
		v = revision
	}
	if v == "" {
		return "dev"
	}
	if len(v) > 8 {
		return v[:8]
	}
	return v
}

// Full returns "customer-service/<commit>".
func Full() string {
	return AppName + "/" + GitCommit
}
