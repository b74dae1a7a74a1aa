package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// splitArgs regroups args as flags, "--", positionals. A token is a flag only
// when it names a flag registered on cmd; everything else, including video
// IDs such as "-uleG_Vecis", is positional. Tokens after an explicit "--" are
// positional.
func splitArgs(cmd *cobra.Command, args []string) []string {
	cmd.InitDefaultHelpFlag()
	cmd.InitDefaultVersionFlag()
	flags := cmd.Flags()

	var flagArgs, positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}

		flag, inline := lookupFlag(flags, arg)
		if flag == nil {
			positional = append(positional, arg)
			continue
		}

		flagArgs = append(flagArgs, arg)
		if !inline && flag.NoOptDefVal == "" && i+1 < len(args) {
			i++
			flagArgs = append(flagArgs, args[i])
		}
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, flagArgs...)
	out = append(out, "--")
	return append(out, positional...)
}

// lookupFlag resolves "--name", "--name=value" and a lone shorthand "-x".
// inline reports whether the value is part of the token.
func lookupFlag(flags *pflag.FlagSet, arg string) (*pflag.Flag, bool) {
	switch {
	case strings.HasPrefix(arg, "--"):
		name, _, inline := strings.Cut(arg[2:], "=")
		return flags.Lookup(name), inline
	case len(arg) == 2 && arg[0] == '-':
		return flags.ShorthandLookup(arg[1:]), false
	}
	return nil, false
}
