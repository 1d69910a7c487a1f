// Package version provides build and version information for schedconf.
package version

// Version is the current release version of schedconf.
// This can be overridden at build time using:
//
//	go build -ldflags "-X github.com/obs-scheduling/schedconf/internal/version.Version=x.y.z"
var Version = "1.0.0"
