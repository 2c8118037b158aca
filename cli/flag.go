package cli

import (
	"github.com/spf13/pflag"
)

// crateVersionValue records whether a crate version was given explicitly,
// keeping "latest" resolution distinguishable from an empty flag.
type crateVersionValue struct {
	IsSet bool
	Value string
}

// String implements pflag.Value.
func (v *crateVersionValue) String() string {
	return v.Value
}

func (v *crateVersionValue) Set(value string) error {
	v.Value = value
	v.IsSet = true
	return nil
}

func (v *crateVersionValue) Type() string {
	return "version"
}

var _ pflag.Value = &crateVersionValue{}
