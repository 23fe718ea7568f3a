package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadBuildInfo_LinkTimeValuesWin(t *testing.T) {
	oldV, oldC, oldD := version, commit, date
	version, commit, date = "v1.2.3", "abc123", "2026-01-02"
	t.Cleanup(func() { version, commit, date = oldV, oldC, oldD })

	bi := readBuildInfo()
	require.Equal(t, "v1.2.3", bi.Version)
	require.Equal(t, "abc123", bi.Commit)
	require.Equal(t, "2026-01-02", bi.Date)
}

func TestVersionCommand(t *testing.T) {
	withFlags(t, false, false, false)

	output, err := captureOutput(t, runVersion)
	require.NoError(t, err)
	assertContains(t, output, []string{"dequectl ", "commit: ", "built: "})
}

func TestVersionCommand_JSON(t *testing.T) {
	withFlags(t, false, false, true)

	output, err := captureOutput(t, runVersion)
	require.NoError(t, err)
	assertJSON(t, output)

	var bi buildInfo
	require.NoError(t, json.Unmarshal([]byte(output), &bi))
	require.NotEmpty(t, bi.Version)
	require.Equal(t, readBuildInfo(), bi)
}
