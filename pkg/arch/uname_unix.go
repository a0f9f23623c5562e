//go:build unix

package arch

import "golang.org/x/sys/unix"

// hostMachine reports the host machine identifier. It is a variable so tests
// can substitute a deterministic lookup.
var hostMachine = unameMachine

func unameMachine() (string, error) {
	var buf unix.Utsname
	if err := unix.Uname(&buf); err != nil {
		return "", err
	}
	return unix.ByteSliceToString(buf.Machine[:]), nil
}
