package main

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// modeFlag is the boolean flag selecting one demo mode. All mode flags write the same target,
// so the last one given on the command line wins.
type modeFlag struct {
	target *mode
	mode   mode
}

func (f modeFlag) String() string {
	return strconv.FormatBool(*f.target == f.mode)
}

func (f modeFlag) Set(value string) error {
	set, err := strconv.ParseBool(value)
	if err != nil {
		return errors.WithStack(err)
	}
	switch {
	case set:
		*f.target = f.mode
	case *f.target == f.mode:
		*f.target = modeRecursive
	}
	return nil
}

func (f modeFlag) Type() string {
	return "bool"
}

func (f modeFlag) IsBoolFlag() bool {
	return true
}

func addModeFlags(flags *pflag.FlagSet, target *mode) {
	for _, m := range []struct {
		mode      mode
		name      string
		shorthand string
		usage     string
	}{
		{mode: modeRecursive, name: "recursive", shorthand: "r", usage: "run recursive demo (default)"},
		{mode: modeFactorization, name: "factorization", shorthand: "f", usage: "run factorization demo"},
		{mode: modePrimeCount, name: "primecount", shorthand: "p", usage: "run prime-counting demo"},
		{mode: modeLogInt, name: "logint", shorthand: "l", usage: "run logarithmic integral demo"},
		{mode: modeLogIntErr, name: "logint-err", shorthand: "e", usage: "run logarithmic integral error demo"},
	} {
		flags.VarPF(modeFlag{target: target, mode: m.mode}, m.name, m.shorthand, m.usage).NoOptDefVal = "true"
	}
}
