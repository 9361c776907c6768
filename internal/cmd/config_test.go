package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigShowsDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	buf := new(bytes.Buffer)
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"config"})
	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "Types:       c_cpp")
	assert.Contains(t, output, "Depth:       unbounded")
	assert.Contains(t, output, "Index file:  gentags.files")
	assert.Contains(t, output, "Directories: (none)")
}

func TestConfigShowsFileValues(t *testing.T) {
	work := t.TempDir()
	cfgPath := filepath.Join(work, "gentags.yaml")
	content := `dirs:
  - src
  - lib
types:
  - python
exclude:
  - src/test
depth: 2
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

	buf := new(bytes.Buffer)
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"config", "-o", cfgPath})
	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "Directories: src, lib")
	assert.Contains(t, output, "Types:       python")
	assert.Contains(t, output, "Exclude:     src/test")
	assert.Contains(t, output, "Depth:       2")
}
