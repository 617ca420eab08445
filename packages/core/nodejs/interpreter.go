package nodejs

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ProjectRefName is the reference name of the project default interpreter
const ProjectRefName = "project"

// ErrUnresolvedInterpreter is returned when a reference cannot be mapped to an executable
var ErrUnresolvedInterpreter = errors.New("unresolved node interpreter")

// InterpreterRef points at an interpreter by name. The zero value is the
// project default reference.
type InterpreterRef struct {
	name string
}

// NewInterpreterRef creates a reference from a stored name. An empty name or
// "project" yields the project default reference.
func NewInterpreterRef(name string) InterpreterRef {
	name = strings.TrimSpace(name)
	if name == ProjectRefName {
		name = ""
	}
	return InterpreterRef{name: name}
}

// ProjectRef returns the project default reference
func ProjectRef() InterpreterRef {
	return InterpreterRef{}
}

// ReferenceName returns the stable identifier persisted for the reference
func (r InterpreterRef) ReferenceName() string {
	if r.name == "" {
		return ProjectRefName
	}
	return r.name
}

// IsProjectRef reports whether r defers to the project default interpreter
func (r InterpreterRef) IsProjectRef() bool {
	return r.name == ""
}

// IsLocal reports whether r names an executable by path
func (r InterpreterRef) IsLocal() bool {
	return r.name != "" && (filepath.IsAbs(r.name) || strings.ContainsAny(r.name, `/\`))
}

// String implements fmt.Stringer
func (r InterpreterRef) String() string {
	return r.ReferenceName()
}

// Resolve maps the reference to an executable path. The project reference
// uses projectInterpreter when set, otherwise node from PATH.
func (r InterpreterRef) Resolve(projectInterpreter string) (string, error) {
	switch {
	case r.IsProjectRef():
		if projectInterpreter != "" {
			return NewInterpreterRef(projectInterpreter).resolveLocal()
		}
		path, err := exec.LookPath("node")
		if err != nil {
			return "", fmt.Errorf("%w: node not found on PATH", ErrUnresolvedInterpreter)
		}
		return path, nil
	case r.IsLocal():
		return r.resolveLocal()
	default:
		path, err := exec.LookPath(r.name)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrUnresolvedInterpreter, r.name)
		}
		return path, nil
	}
}

func (r InterpreterRef) resolveLocal() (string, error) {
	info, err := os.Stat(r.name)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnresolvedInterpreter, r.name, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrUnresolvedInterpreter, r.name)
	}
	return r.name, nil
}
