// Package version carries build metadata injected at link time.
package version

// Set via -ldflags at build time, e.g.
//
//	-X github.com/openviking/ovx/pkg/version.BuildVersion=v0.3.0
var (
	BuildVersion = "dev"
	Commit       = "none"
	BuildTime    = "unknown"
)
