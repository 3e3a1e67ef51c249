package version

import "fmt"

// Version information set at build time via ldflags
var (
	// Version is the semantic version of the build
	Version = "v0.1.0"
)

// GetVersion returns the version string
func GetVersion() string {
	return Version
}

// UserAgent describes the build and the wire protocol it speaks
func UserAgent(protocolVersion int) string {
	return fmt.Sprintf("lanbeacon/%s (protocol v%d)", Version, protocolVersion)
}
