// Package version exposes build information of the envelope binary.
//
// Set the variables at build time with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/ncobase/envelope/version.Version=1.2.3 \
//	  -X github.com/ncobase/envelope/version.Revision=abc1234 \
//	  -X 'github.com/ncobase/envelope/version.BuiltAt=$(date)'" ./cmd/envelope
//
// Unset values are completed from the VCS information the Go toolchain
// stamps into the binary.
package version
