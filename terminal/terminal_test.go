package terminal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenNotATerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "stdin"))
	require.NoError(t, err)
	defer f.Close()

	tty, err := Open(f)
	require.NoError(t, err)
	assert.False(t, tty.raw)

	assert.NoError(t, tty.Close())
	assert.NoError(t, tty.Close())
}
