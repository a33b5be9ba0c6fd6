// Package buildinfo holds identifiers stamped in with
//
//	-ldflags "-X glimmer/internal/buildinfo.Version=v1.2.0 -X glimmer/internal/buildinfo.Commit=..."
package buildinfo

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

const shortCommit = 7

// Short is the identifier shown in the boot log and window title: the
// release version if stamped, else the abbreviated commit, else "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		if len(Commit) > shortCommit {
			return Commit[:shortCommit]
		}
		return Commit
	}
	return "dev"
}

// String describes the build for -version style output.
func String() string {
	return "glimmer " + Short() + " (commit " + Commit + ", built " + Date + ")"
}
