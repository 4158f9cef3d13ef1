package logger

import (
	"os"
	"path/filepath"
	"testing"

	logrus "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesToRotatedFile(t *testing.T) {
	prevOut, prevLevel := logrus.StandardLogger().Out, logrus.GetLevel()
	t.Cleanup(func() {
		logrus.SetOutput(prevOut)
		logrus.SetLevel(prevLevel)
	})

	path := filepath.Join(t.TempDir(), "logs", "airide.log")
	Setup(path, logrus.InfoLevel)

	logrus.WithField("driver_id", "d-1").Info("Driver went online")
	logrus.Debug("not written at info level")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Driver went online")
	assert.Contains(t, string(b), "driver_id=d-1")
	assert.NotContains(t, string(b), "not written")
	assert.Same(t, logrus.StandardLogger(), GormLogger())
}
