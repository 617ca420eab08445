package env

import (
	"maps"
	"os"
	"slices"
	"strings"
)

// SystemEnv returns the current process environment, optionally limited to
// variables starting with prefix (the prefix is stripped from the keys).
func SystemEnv(prefix string) map[string]string {
	return parseEnviron(os.Environ(), prefix)
}

func parseEnviron(environ []string, prefix string) map[string]string {
	result := make(map[string]string)
	for _, e := range environ {
		key, value, found := strings.Cut(e, "=")
		if !found || key == "" {
			continue
		}
		if prefix == "" {
			result[key] = value
		} else if len(key) > len(prefix) && strings.HasPrefix(key, prefix) {
			result[key[len(prefix):]] = value
		}
	}
	return result
}

// Environ returns the effective environment of a run as sorted KEY=VALUE
// pairs: parent (when inherited) overlaid by the configured variables.
func (d Data) Environ(parent []string) []string {
	merged := make(map[string]string)
	if d.passParentEnvs {
		maps.Copy(merged, parseEnviron(parent, ""))
	}
	maps.Copy(merged, d.envs)

	result := make([]string, 0, len(merged))
	for _, k := range slices.Sorted(maps.Keys(merged)) {
		result = append(result, k+"="+merged[k])
	}
	return result
}
