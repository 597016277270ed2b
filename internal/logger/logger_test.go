package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Level(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New("debug", "json").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("loud", "json").GetLevel())
}

func TestLogError_JSON(t *testing.T) {
	var buf bytes.Buffer
	logg := newWithOutput("info", "json", &buf)

	LogError(logg, "approval", "Review", map[string]string{"documentId": "doc-1"}, errors.New("boom"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "boom", entry["msg"])
	assert.Equal(t, "approval", entry["module"])
	assert.Equal(t, "Review", entry["funcName"])
	assert.Equal(t, "error", entry["level"])
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logg := newWithOutput("info", "text", &buf)

	logg.WithField("documentId", "doc-1").Info("reviewed")
	assert.Contains(t, buf.String(), "documentId=doc-1")
	assert.Contains(t, buf.String(), `msg=reviewed`)
}
