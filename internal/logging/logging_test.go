package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestSetup_Levels(t *testing.T) {
	tests := []struct {
		name           string
		verbose, quiet bool
		wantDebug      bool
		wantInfo       bool
	}{
		{name: "default", wantInfo: true},
		{name: "verbose", verbose: true, wantDebug: true, wantInfo: true},
		{name: "quiet", quiet: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := Setup(&buf, tt.verbose, tt.quiet, true)
			t.Cleanup(func() { log.SetDefault(log.New(&bytes.Buffer{})) })

			logger.Debug("debug line")
			logger.Info("info line")
			logger.Warn("warn line")

			out := buf.String()
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug line")), out)
			assert.Equal(t, tt.wantInfo, bytes.Contains(buf.Bytes(), []byte("info line")), out)
			assert.Contains(t, out, "warn line")
		})
	}
}

func TestSetup_InstallsDefault(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, false, false, true)
	t.Cleanup(func() { log.SetDefault(log.New(&bytes.Buffer{})) })

	log.Warn("from package level", "count", 2)
	assert.Contains(t, buf.String(), "from package level")
	assert.Contains(t, buf.String(), "count=2")
}
