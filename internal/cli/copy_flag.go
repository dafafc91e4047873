package cli

import (
	"fmt"

	"github.com/spf13/pflag"
)

const (
	copyFlagName                = "copy"
	copyFlagTypeName            = "copy"
	copyFlagDescription         = "also copy the generated prompt to the system clipboard"
	copyFlagImplicitValue       = "true"
	invalidCopyFlagValueMessage = "invalid copy flag value '%s'"
)

// copyFlagValue accepts "--copy" alone or with an attached yes/no style literal ("--copy=no").
// A detached value is not consumed, so "--copy src" keeps src as the project path.
type copyFlagValue struct {
	target *bool
}

func (value *copyFlagValue) Set(input string) error {
	if value == nil || value.target == nil {
		return fmt.Errorf(invalidCopyFlagValueMessage, input)
	}
	booleanValue, ok := parseBooleanLiteral(input)
	if !ok {
		return fmt.Errorf(invalidCopyFlagValueMessage, input)
	}
	*value.target = booleanValue
	return nil
}

func (value *copyFlagValue) String() string {
	if value == nil || value.target == nil {
		return "false"
	}
	if *value.target {
		return "true"
	}
	return "false"
}

func (value *copyFlagValue) Type() string {
	return copyFlagTypeName
}

func registerCopyFlag(flagSet *pflag.FlagSet, target *bool) {
	if flagSet == nil || target == nil {
		return
	}
	*target = false
	flagSet.Var(&copyFlagValue{target: target}, copyFlagName, copyFlagDescription)
	if registeredFlag := flagSet.Lookup(copyFlagName); registeredFlag != nil {
		registeredFlag.NoOptDefVal = copyFlagImplicitValue
	}
}
