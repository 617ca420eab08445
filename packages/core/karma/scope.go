package karma

import "fmt"

// ScopeKind selects which tests a run targets
type ScopeKind int

const (
	// ScopeAll runs every test
	ScopeAll ScopeKind = iota
	// ScopeTestFile runs the tests of a single file
	ScopeTestFile
	// ScopeSuite runs a named suite
	ScopeSuite
	// ScopeTest runs a single named test
	ScopeTest
)

var scopeKindNames = [...]string{
	ScopeAll:      "ALL",
	ScopeTestFile: "TEST_FILE",
	ScopeSuite:    "SUITE",
	ScopeTest:     "TEST",
}

// ScopeKinds lists every scope kind in declaration order
func ScopeKinds() []ScopeKind {
	return []ScopeKind{ScopeAll, ScopeTestFile, ScopeSuite, ScopeTest}
}

// String returns the persisted name of the scope kind
func (k ScopeKind) String() string {
	if k < 0 || int(k) >= len(scopeKindNames) {
		return fmt.Sprintf("ScopeKind(%d)", int(k))
	}
	return scopeKindNames[k]
}

// UsesTestNames reports whether the scope is driven by a list of test names
func (k ScopeKind) UsesTestNames() bool {
	return k == ScopeSuite || k == ScopeTest
}

// ParseScopeKind matches s case-exactly against the scope kind names
func ParseScopeKind(s string) (ScopeKind, bool) {
	for i, name := range scopeKindNames {
		if name == s {
			return ScopeKind(i), true
		}
	}
	return ScopeAll, false
}

// ParseScopeKindOrDefault is ParseScopeKind with ScopeAll for anything unrecognized
func ParseScopeKindOrDefault(s string) ScopeKind {
	k, _ := ParseScopeKind(s)
	return k
}

// MarshalText implements encoding.TextMarshaler
func (k ScopeKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(scopeKindNames) {
		return nil, fmt.Errorf("invalid scope kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unlike ReadXML it
// rejects unknown names.
func (k *ScopeKind) UnmarshalText(text []byte) error {
	parsed, ok := ParseScopeKind(string(text))
	if !ok {
		return fmt.Errorf("unknown scope kind %q", string(text))
	}
	*k = parsed
	return nil
}
