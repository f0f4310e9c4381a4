package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureJSONOutsideLocal(t *testing.T) {
	var buf bytes.Buffer
	log := Configure(&buf, "production", "debug")

	log.Component("classifier").Debug("detected")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "classifier", entry["component"])
	assert.Equal(t, "detected", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
}

func TestConfigureLevels(t *testing.T) {
	assert.Equal(t, logrus.InfoLevel, parseLevel(""))
	assert.Equal(t, logrus.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, logrus.ErrorLevel, parseLevel("error"))
}

func TestWithRequestKeepsHeaderID(t *testing.T) {
	var buf bytes.Buffer
	log := Configure(&buf, "production", "info")

	r := httptest.NewRequest("POST", "/analyze", nil)
	r.Header.Set("X-Request-ID", "abc-123")
	log.WithRequest(r).Info("hit")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc-123", entry["req_id"])
	assert.Equal(t, "/analyze", entry["path"])
}

func TestRequestIDGenerated(t *testing.T) {
	r := httptest.NewRequest("GET", "/healthz", nil)
	assert.Len(t, RequestID(r), 36)
}

func TestWithErrorNil(t *testing.T) {
	var buf bytes.Buffer
	log := Configure(&buf, "production", "info")
	assert.NotContains(t, log.WithError(nil).Data, "error")
	assert.Equal(t, "boom", log.WithError(errors.New("boom")).Data["error"])
}
