// Package version reports the storefront build.
//
// Version, commit, branch and build time are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/storefront/version.Version=1.2.0" ./cmd/storefront
//
// Unset values fall back to the module's embedded VCS settings.
package version
