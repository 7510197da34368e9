package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	dir := t.TempDir()

	logger, flush, err := New(dir)
	require.NoError(t, err)

	logger.Debug("file only")
	logger.Info("file and console")
	flush()

	name := fmt.Sprintf("futuresctl_%s.log", time.Now().Format("20060102"))
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)

	// The file sink captures debug, the coarser console sink does not.
	assert.Contains(t, string(data), "file only")
	assert.Contains(t, string(data), "file and console")
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")

	_, flush, err := New(dir)
	require.NoError(t, err)
	flush()

	_, err = os.Stat(dir)
	assert.NoError(t, err)
}
