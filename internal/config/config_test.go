package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/calllog/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Dir)
	assert.Equal(t, "data.csv", cfg.File)
	assert.Equal(t, "нет", cfg.UnresolvedWord)
	assert.Equal(t, "стоп", cfg.StopWord)
	assert.Equal(t, "да", cfg.YesWord)
	assert.Equal(t, filepath.Join("calls", "data.csv"), cfg.LogPath("calls"))
	assert.Equal(t, "data.csv", cfg.LogPath(""))
}

func TestLoad_Overrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyLogDir, "/srv/support")
	v.Set(KeyLogFile, "calls.csv")
	v.Set(KeyUnresolvedWord, "no")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "/srv/support/calls.csv", cfg.LogPath(""))
	assert.Equal(t, "no", cfg.UnresolvedWord)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("CALLLOG_LOG_FILE", "calls.csv")
	t.Setenv("CALLLOG_LOG_UNRESOLVED_WORD", "no")
	t.Setenv("CALLLOG_PROMPT_STOP_WORD", "stop")

	v := viper.New()
	SetDefaults(v)
	BindEnv(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "calls.csv", cfg.File)
	assert.Equal(t, "no", cfg.UnresolvedWord)
	assert.Equal(t, "stop", cfg.StopWord)
	assert.Equal(t, "да", cfg.YesWord)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{name: "empty file", key: KeyLogFile, value: " ", wantErr: common.ErrMissingConfig},
		{name: "empty stop word", key: KeyStopWord, value: "", wantErr: common.ErrMissingConfig},
		{name: "file with directory", key: KeyLogFile, value: "a/b.csv", wantErr: common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("CALLLOG_TEST_DIR", "/var/calls")

	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "~", want: home},
		{input: "~/calls", want: filepath.Join(home, "calls")},
		{input: "$CALLLOG_TEST_DIR/data.csv", want: "/var/calls/data.csv"},
		{input: "/abs/path", want: "/abs/path"},
		{input: "rel/~/path", want: "rel/~/path"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}
