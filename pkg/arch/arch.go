// Package arch maps host machine identifiers to the closed set of
// architectures an image can be tagged with.
package arch

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned for machine identifiers outside the alias table.
var ErrUnsupported = errors.New("unsupported architecture")

// Architecture is one of the supported image architectures. Its string form
// is the canonical lowercase token used in tags and labels.
type Architecture int

const (
	Amd64 Architecture = iota
	Arm64v8
)

func (a Architecture) String() string {
	switch a {
	case Amd64:
		return "amd64"
	case Arm64v8:
		return "arm64v8"
	}
	return fmt.Sprintf("Architecture(%d)", int(a))
}

// Parse maps a host machine identifier to an Architecture. The alias set
// follows rustup's installer. Unrecognized identifiers are an error, never a
// default: guessing would corrupt the tag scheme.
func Parse(machine string) (Architecture, error) {
	switch machine {
	case "amd64", "x86_64", "x86-64", "x64":
		return Amd64, nil
	case "arm64", "aarch64", "arm64v8":
		return Arm64v8, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupported, machine)
}

// Detect returns the architecture of the host this process runs on.
func Detect() (Architecture, error) {
	machine, err := hostMachine()
	if err != nil {
		return 0, fmt.Errorf("failed to read host machine identifier: %w", err)
	}
	return Parse(machine)
}
