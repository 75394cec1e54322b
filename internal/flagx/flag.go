// Package flagx lets several independent flag sets share one command line.
// Each consumer keeps only the arguments it owns and parses them with its own
// flag.FlagSet, so the client's command tree and the config loader never
// reject each other's flags.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps the allowed flags and their values from args.
//
// Accepted forms are "-f value", "-f=value" and "--f=value". A token that
// follows an allowed flag is taken as its value unless it starts with "-".
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	kept, _ := split(args, allowedFlags)
	return kept
}

// StripArgs is the complement of FilterArgs: it drops the listed flags and
// their values and returns everything else in order.
func StripArgs(args []string, ownedFlags []string) []string {
	_, rest := split(args, ownedFlags)
	return rest
}

func split(args []string, flags []string) (kept, rest []string) {
	owned := make(map[string]struct{}, len(flags))
	for _, f := range flags {
		owned[f] = struct{}{}
	}

	kept = make([]string, 0, len(args))
	rest = make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, ok := owned[name]; ok {
				kept = append(kept, arg)
			} else {
				rest = append(rest, arg)
			}
			continue
		}

		if _, ok := owned[arg]; !ok {
			rest = append(rest, arg)
			continue
		}
		kept = append(kept, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			kept = append(kept, args[i+1])
			i++
		}
	}

	return kept, rest
}

// ConfigPath returns the JSON config file named by -c or -config in args,
// or "" when neither is present. The last occurrence wins.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))

	return path
}
