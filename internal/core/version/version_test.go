package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo_LinkTimeValuesWin(t *testing.T) {
	prev := [3]string{version, commit, date}
	t.Cleanup(func() { version, commit, date = prev[0], prev[1], prev[2] })

	version, commit, date = "v1.2.3", "abc123", "2026-01-02"
	assert.Equal(t, BuildInfo{Service: "dashkit-api", Version: "v1.2.3", Commit: "abc123", Date: "2026-01-02"}, Info())
}

func TestInfo_NeverBlank(t *testing.T) {
	bi := Info()
	assert.Equal(t, "dashkit-api", bi.Service)
	assert.NotEmpty(t, bi.Version)
	assert.NotEmpty(t, bi.Commit)
	assert.NotEmpty(t, bi.Date)
}
