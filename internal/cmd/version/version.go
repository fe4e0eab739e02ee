package version

import (
	"fmt"
	"runtime"
)

var (
	// Set via -ldflags at release time; safe defaults keep local/module builds installable.
	gitCommit = "unknown"
	version   = "dev"
	buildDate = "1970-01-01 00:00:00 +0000"
)

var goVersion = runtime.Version()

var osArch = fmt.Sprintf("%s %s", runtime.GOOS, runtime.GOARCH)

// generateOutput returns the output of the version command.
func generateOutput() string {
	return fmt.Sprintf(`purr - %s

Git Commit: %s
Build date: %s
Go version: %s
OS / Arch : %s
`, version, gitCommit, buildDate, goVersion, osArch)
}

// Print the current version.
func Print() {
	fmt.Println(generateOutput())
}

// String returns the bare version string.
func String() string {
	return version
}
