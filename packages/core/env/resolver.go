package env

import (
	"os"
	"regexp"
	"sync"
)

var macroPattern = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)\$`)

const (
	ProjectDirMacro = "PROJECT_DIR"
	UserHomeMacro   = "USER_HOME"
)

// WarnFunc is a function type for handling warnings
type WarnFunc func(format string, args ...any)

// MacroResolver expands $NAME$ path macros as stored in run configurations.
// It is safe for concurrent use.
type MacroResolver struct {
	mu       sync.RWMutex
	macros   map[string]string
	warnFunc WarnFunc
}

// NewMacroResolver creates a resolver with $PROJECT_DIR$ bound to projectDir
// and $USER_HOME$ bound to the current user's home directory when known.
func NewMacroResolver(projectDir string) *MacroResolver {
	r := &MacroResolver{macros: make(map[string]string)}
	if projectDir != "" {
		r.macros[ProjectDirMacro] = projectDir
	}
	if home, err := os.UserHomeDir(); err == nil {
		r.macros[UserHomeMacro] = home
	}
	return r
}

// SetWarnFunc sets a function to be called for macros that cannot be expanded
func (r *MacroResolver) SetWarnFunc(fn WarnFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnFunc = fn
}

func (r *MacroResolver) warn(format string, args ...any) {
	r.mu.RLock()
	fn := r.warnFunc
	r.mu.RUnlock()
	if fn != nil {
		fn(format, args...)
	}
}

// SetMacro binds name (without the surrounding $) to value
func (r *MacroResolver) SetMacro(name, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.macros[name] = value
}

// Expand replaces known macros in input. Unknown macros are left untouched.
func (r *MacroResolver) Expand(input string) string {
	return macroPattern.ReplaceAllStringFunc(input, func(match string) string {
		name := match[1 : len(match)-1]

		r.mu.RLock()
		val, ok := r.macros[name]
		r.mu.RUnlock()

		if ok {
			return val
		}
		r.warn("unresolved path macro: %s", match)
		return match
	})
}
