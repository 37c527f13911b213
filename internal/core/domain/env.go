package domain

import (
	"maps"
	"os"
	"slices"
	"strings"
)

// ExpandEnv substitutes %VAR% and ${VAR} tokens with values from env.
// A doubled percent sign yields a literal '%'. If any token names a variable
// that is not present, s is returned unchanged.
func ExpandEnv(s string, env map[string]string) string {
	if !strings.ContainsAny(s, "%$") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		switch {
		case s[i] == '%':
			end := strings.IndexByte(s[i+1:], '%')
			if end < 0 {
				b.WriteString(s[i:])
				i = len(s)
				continue
			}
			name := s[i+1 : i+1+end]
			if name == "" {
				b.WriteByte('%')
				i += 2
				continue
			}
			v, ok := env[name]
			if !ok {
				return s
			}
			b.WriteString(v)
			i += end + 2
		case s[i] == '$' && i+1 < len(s) && s[i+1] == '{':
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				b.WriteString(s[i:])
				i = len(s)
				continue
			}
			v, ok := env[s[i+2:i+2+end]]
			if !ok {
				return s
			}
			b.WriteString(v)
			i += end + 3
		default:
			b.WriteByte(s[i])
			i++
		}
	}

	return b.String()
}

// ProcessEnv returns the current process environment as a map.
func ProcessEnv() map[string]string {
	env := make(map[string]string)
	for _, entry := range os.Environ() {
		if k, v, ok := strings.Cut(entry, "="); ok {
			env[k] = v
		}
	}
	return env
}

// MergeEnv layers environment maps, later layers overriding earlier ones.
func MergeEnv(layers ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, layer := range layers {
		maps.Copy(merged, layer)
	}
	return merged
}

// ExpandAll expands every value of env against env itself. Expansion reads
// the unexpanded values, so the result does not depend on iteration order.
func ExpandAll(env map[string]string) map[string]string {
	expanded := make(map[string]string, len(env))
	for k, v := range env {
		expanded[k] = ExpandEnv(v, env)
	}
	return expanded
}

// Environ renders env as sorted "KEY=VALUE" pairs.
func Environ(env map[string]string) []string {
	keys := slices.Sorted(maps.Keys(env))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}
