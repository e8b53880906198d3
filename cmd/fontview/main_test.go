package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandFlags(t *testing.T) {
	for name, def := range map[string]string{
		"config":   "",
		"game-dir": "",
		"text":     "The quick brown fox {{.}}",
		"retina":   "false",
	} {
		f := rootCmd.Flags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, def, f.DefValue, name)
	}

	require.NoError(t, rootCmd.ParseFlags([]string{"--game-dir", "/games/u8", "--retina", "--text", "hi"}))
	assert.Equal(t, "/games/u8", flagGameDir)
	assert.True(t, flagRetina)
	assert.Equal(t, "hi", flagText)
	assert.Error(t, rootCmd.Args(rootCmd, []string{"extra"}))
}
