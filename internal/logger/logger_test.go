package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureJSON(t *testing.T) {
	log := logrus.New()
	var buf bytes.Buffer

	require.NoError(t, Configure(log, &buf, "debug", "json"))
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.WithField("component", "store").Debug("saved data")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "saved data", entry["msg"])
	assert.Equal(t, "store", entry["component"])
	assert.Equal(t, "debug", entry["level"])
}

func TestConfigureTextFiltersLevel(t *testing.T) {
	log := logrus.New()
	var buf bytes.Buffer

	require.NoError(t, Configure(log, &buf, "warn", "text"))
	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestConfigureRejectsBadInput(t *testing.T) {
	log := logrus.New()
	var buf bytes.Buffer

	assert.Error(t, Configure(log, &buf, "loud", "text"))
	assert.Error(t, Configure(log, &buf, "info", "xml"))
}
