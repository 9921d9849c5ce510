package mode

import "github.com/spf13/pflag"

// Value is a pflag.Value holding an optional mode. An unset Value means
// "use the configured mode".
type Value struct {
	perm Perm
	raw  string
	set  bool
}

var _ pflag.Value = (*Value)(nil)

// String returns the mode as given on the command line.
func (v *Value) String() string {
	return v.raw
}

// Set parses and stores s.
func (v *Value) Set(s string) error {
	p, err := Parse(s)
	if err != nil {
		return err
	}
	v.perm, v.raw, v.set = p, s, true
	return nil
}

// Type names the flag value in usage output.
func (v *Value) Type() string {
	return "mode"
}

// Get returns the parsed mode and whether the flag was set.
func (v *Value) Get() (Perm, bool) {
	return v.perm, v.set
}

// Raw returns the string the flag was set to, or "" when unset.
func (v *Value) Raw() string {
	return v.raw
}
