// Package version exposes build information.
package version

// Version is the application version, overridden at build time with
// -ldflags "-X github.com/kritikayadav/screener-backend/internal/version.Version=v1.2.3".
var Version = "dev"
