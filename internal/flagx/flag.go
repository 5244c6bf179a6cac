// Package flagx lets several packages read their own subset of the command
// line without tripping over flags defined elsewhere.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the allowed flags of args together with their values.
// Both "-f value" and "-f=value" forms are recognized. A value is taken from
// the next argument only when it does not start with "-".
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, keep := allowed[name]; keep {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, keep := allowed[arg]; !keep {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// stringFlag parses a single string flag registered under several names.
func stringFlag(names ...string) string {
	var value string

	fs := flag.NewFlagSet("flagx", flag.ContinueOnError)
	fs.SetOutput(discard{})
	for _, n := range names {
		fs.StringVar(&value, strings.TrimLeft(n, "-"), "", "")
	}
	_ = fs.Parse(FilterArgs(os.Args[1:], names))

	return value
}

// ConfigFileFlag returns the JSON config path given with -c or -config.
func ConfigFileFlag() string {
	return stringFlag("-c", "-config")
}

// EnvFileFlag returns the dotenv path given with -e or -env.
func EnvFileFlag() string {
	return stringFlag("-e", "-env")
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
