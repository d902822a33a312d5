package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterSensitiveHeaders(t *testing.T) {
	got := filterSensitiveHeaders(map[string]string{
		"Authorization": "Bearer x",
		"cookie":        "tirewriter_session=abc",
		"X-Session-ID":  "s-1",
		"Content-Type":  "application/json",
	})

	assert.Equal(t, "[REDACTED]", got["Authorization"])
	assert.Equal(t, "[REDACTED]", got["cookie"])
	assert.Equal(t, "[REDACTED]", got["X-Session-ID"])
	assert.Equal(t, "application/json", got["Content-Type"])
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "tui")

	for _, flag := range []string{"port", "pacing", "verbose"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), flag)
	}
	assert.NotNil(t, tuiCmd.Flags().Lookup("session"))
}
