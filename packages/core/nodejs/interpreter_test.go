package nodejs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInterpreterRef(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantName    string
		wantProject bool
		wantLocal   bool
	}{
		{name: "empty is project", input: "", wantName: "project", wantProject: true},
		{name: "explicit project", input: "project", wantName: "project", wantProject: true},
		{name: "absolute path", input: "/usr/local/bin/node", wantName: "/usr/local/bin/node", wantLocal: true},
		{name: "relative path", input: "bin/node", wantName: "bin/node", wantLocal: true},
		{name: "named", input: "node18", wantName: "node18"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := NewInterpreterRef(tt.input)
			assert.Equal(t, tt.wantName, ref.ReferenceName())
			assert.Equal(t, tt.wantProject, ref.IsProjectRef())
			assert.Equal(t, tt.wantLocal, ref.IsLocal())
		})
	}
}

func TestZeroValueIsProjectRef(t *testing.T) {
	var ref InterpreterRef
	assert.Equal(t, ProjectRef(), ref)
	assert.Equal(t, "project", ref.String())
}

func TestResolveLocal(t *testing.T) {
	dir := t.TempDir()
	node := filepath.Join(dir, "node")
	require.NoError(t, os.WriteFile(node, []byte("#!/bin/sh\n"), 0755))

	path, err := NewInterpreterRef(node).Resolve("")
	require.NoError(t, err)
	assert.Equal(t, node, path)

	path, err = ProjectRef().Resolve(node)
	require.NoError(t, err)
	assert.Equal(t, node, path)

	_, err = NewInterpreterRef(filepath.Join(dir, "missing")).Resolve("")
	assert.ErrorIs(t, err, ErrUnresolvedInterpreter)

	_, err = NewInterpreterRef(dir + "/").Resolve("")
	assert.ErrorIs(t, err, ErrUnresolvedInterpreter)
}

func TestResolveNamedMissing(t *testing.T) {
	_, err := NewInterpreterRef("definitely-not-a-node-binary-xyz").Resolve("")
	assert.ErrorIs(t, err, ErrUnresolvedInterpreter)
}
