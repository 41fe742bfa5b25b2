package flagx

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "short flag with separate value",
			args:    []string{"-c", "conf.json", "-u", "http://mirror"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "flag with equals",
			args:    []string{"-config=alt.json", "-d", "x.db"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=alt.json"},
		},
		{
			name:    "unknown flags and positionals ignored",
			args:    []string{"-x", "1", "-y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag without value at end",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next dash token is not a value",
			args:    []string{"-c", "-config=alt.json"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "-config=alt.json"},
		},
		{
			name:    "several allowed flags keep their order",
			args:    []string{"-u", "http://h", "-t", "5", "-l", "debug"},
			allowed: []string{"-t", "-u"},
			want:    []string{"-u", "http://h", "-t", "5"},
		},
		{
			name:    "empty args",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("FilterArgs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfigFilePath(t *testing.T) {
	t.Run("short -c", func(t *testing.T) {
		assert.Equal(t, "/etc/short.json", ConfigFilePath([]string{"-c", "/etc/short.json"}))
	})

	t.Run("long -config", func(t *testing.T) {
		assert.Equal(t, "/etc/long.json", ConfigFilePath([]string{"-config", "/etc/long.json"}))
	})

	t.Run("other flags only", func(t *testing.T) {
		assert.Empty(t, ConfigFilePath([]string{"-u", "http://h", "-t", "3"}))
	})

	t.Run("last wins", func(t *testing.T) {
		assert.Equal(t, "/2.json", ConfigFilePath([]string{"-c", "/1.json", "-config", "/2.json"}))
	})
}
