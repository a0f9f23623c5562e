//go:build !unix

package arch

import "runtime"

// hostMachine reports the host machine identifier. Without uname we fall back
// to the Go toolchain's notion of the architecture, which is in the alias
// table for every platform we support.
var hostMachine = func() (string, error) {
	return runtime.GOARCH, nil
}
