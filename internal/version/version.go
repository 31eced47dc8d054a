// Package version provides version information.
package version

// Version is set at build time via -ldflags
// "-X github.com/sudo-give-me-coffee/Boop-GTK/internal/version.Version=<value>".
// The default is a development placeholder.
var Version = "v1.0.0-dev"
