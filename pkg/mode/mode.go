// Package mode parses the permission modes configured for an import area.
//
// Two notations are accepted: an octal number in [0, 0777] ("0644", "755")
// and the 9-character symbolic form used by ls ("rw-r--r--"). Both parse to
// the same Perm, so "0755" and "rwxr-xr-x" are interchangeable.
package mode

import (
	"fmt"
	"os"
	"strconv"
)

// Perm is a set of the nine POSIX permission bits. Bit 8 is owner-read and
// bit 0 is other-execute, matching the layout of os.FileMode.
type Perm uint16

// Individual permission bits.
const (
	OwnerRead    Perm = 0o400
	OwnerWrite   Perm = 0o200
	OwnerExecute Perm = 0o100
	GroupRead    Perm = 0o040
	GroupWrite   Perm = 0o020
	GroupExecute Perm = 0o010
	OtherRead    Perm = 0o004
	OtherWrite   Perm = 0o002
	OtherExecute Perm = 0o001

	mask Perm = 0o777
)

const symbolicColumns = "rwxrwxrwx"

// InvalidModeError reports a mode string that is neither valid octal nor
// valid symbolic notation.
type InvalidModeError struct {
	Mode string
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid mode %q: expected octal (e.g. 0644) or symbolic (e.g. rw-r--r--) notation", e.Mode)
}

// Parse converts a mode string to a Perm. Octal is tried first, then symbolic.
func Parse(s string) (Perm, error) {
	if p, ok := parseOctal(s); ok {
		return p, nil
	}
	if p, ok := parseSymbolic(s); ok {
		return p, nil
	}
	return 0, &InvalidModeError{Mode: s}
}

// MustParse is like Parse but panics on invalid input. Intended for constants.
func MustParse(s string) Perm {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Validate reports whether s is a valid mode string.
func Validate(s string) error {
	_, err := Parse(s)
	return err
}

func parseOctal(s string) (Perm, bool) {
	v, err := strconv.ParseUint(s, 8, 16)
	if err != nil || v > uint64(mask) {
		return 0, false
	}
	return Perm(v), true
}

func parseSymbolic(s string) (Perm, bool) {
	if len(s) != len(symbolicColumns) {
		return 0, false
	}
	var p Perm
	for i := 0; i < len(symbolicColumns); i++ {
		switch s[i] {
		case symbolicColumns[i]:
			p |= 1 << (len(symbolicColumns) - 1 - i)
		case '-':
		default:
			return 0, false
		}
	}
	return p, true
}

// Has reports whether all bits of q are set in p.
func (p Perm) Has(q Perm) bool {
	return p&q == q
}

// FileMode returns p as an os.FileMode permission.
func (p Perm) FileMode() os.FileMode {
	return os.FileMode(p & mask)
}

// FromFileMode extracts the permission bits of m.
func FromFileMode(m os.FileMode) Perm {
	return Perm(m.Perm())
}

// String renders p in symbolic notation, e.g. "rwxr-xr-x".
func (p Perm) String() string {
	b := []byte(symbolicColumns)
	for i := range b {
		if p&(1<<(len(b)-1-i)) == 0 {
			b[i] = '-'
		}
	}
	return string(b)
}

// Octal renders p as a four digit octal string, e.g. "0755".
func (p Perm) Octal() string {
	return fmt.Sprintf("%04o", uint16(p&mask))
}
