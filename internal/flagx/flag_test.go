package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value kept",
			args:    []string{"-u", "http://localhost:8000", "-x", "ignored"},
			allowed: []string{"-u"},
			want:    []string{"-u", "http://localhost:8000"},
		},
		{
			name:    "equals form kept",
			args:    []string{"--base-url=http://localhost:8000", "--other=1"},
			allowed: []string{"--base-url"},
			want:    []string{"--base-url=http://localhost:8000"},
		},
		{
			name:    "flag followed by another flag keeps no value",
			args:    []string{"-u", "-t", "5"},
			allowed: []string{"-u"},
			want:    []string{"-u"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "b"},
			allowed: []string{},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()

	os.Args = []string{"cli", "-c", "conf.json", "-u", "http://example.com"}
	require.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"cli", "-config=other.json"}
	require.Equal(t, "other.json", JsonConfigFlags())

	os.Args = []string{"cli"}
	require.Equal(t, "", JsonConfigFlags())
}
