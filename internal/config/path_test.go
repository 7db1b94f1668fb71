package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("FARMAKIT_TEST_DIR", "/data/images")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain path untouched", input: "/var/lib/farmakit", want: "/var/lib/farmakit"},
		{name: "tilde alone", input: "~", want: home},
		{name: "tilde prefix", input: "~/catalog.db", want: filepath.Join(home, "catalog.db")},
		{name: "env var", input: "$FARMAKIT_TEST_DIR/legacy", want: "/data/images/legacy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}

func TestDefaultDataDir(t *testing.T) {
	dir := DefaultDataDir()
	assert.NotEmpty(t, dir)
}
