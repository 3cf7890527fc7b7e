// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/calllog/internal/common"
	"github.com/Veraticus/calllog/internal/model"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyLogDir         = "log.dir"
	KeyLogFile        = "log.file"
	KeyUnresolvedWord = "log.unresolved_word"
	KeyStopWord       = "prompt.stop_word"
	KeyYesWord        = "prompt.yes_word"
	KeyArchivePath    = "archive.path"
	KeyLoggingLevel   = "logging.level"
	KeyLoggingFormat  = "logging.format"
)

// EnvPrefix prefixes the environment variables read for configuration, so
// log.file is read from CALLLOG_LOG_FILE.
const EnvPrefix = "CALLLOG"

// Config holds the settings used by the call log commands.
type Config struct {
	Dir            string // Directory holding the call log
	File           string // Call log file name within Dir
	UnresolvedWord string // Resolved-flag value marking an unresolved call
	StopWord       string // Phone input that ends the add loop
	YesWord        string // Answer that confirms a yes/no question
	ArchivePath    string
}

// BindEnv makes every key of v readable from the environment.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogDir, ".")
	v.SetDefault(KeyLogFile, "data.csv")
	v.SetDefault(KeyUnresolvedWord, model.ResolvedNo)
	v.SetDefault(KeyStopWord, "стоп")
	v.SetDefault(KeyYesWord, model.ResolvedYes)
	v.SetDefault(KeyArchivePath, "$HOME/.local/share/calllog/calls.db")
	v.SetDefault(KeyLoggingLevel, "info")
	v.SetDefault(KeyLoggingFormat, "console")
}

// Load reads and validates the call log settings from v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Dir:            ExpandPath(v.GetString(KeyLogDir)),
		File:           v.GetString(KeyLogFile),
		UnresolvedWord: v.GetString(KeyUnresolvedWord),
		StopWord:       v.GetString(KeyStopWord),
		YesWord:        v.GetString(KeyYesWord),
		ArchivePath:    ExpandPath(v.GetString(KeyArchivePath)),
	}

	required := map[string]string{
		KeyLogFile:        cfg.File,
		KeyUnresolvedWord: cfg.UnresolvedWord,
		KeyStopWord:       cfg.StopWord,
		KeyYesWord:        cfg.YesWord,
	}
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			return Config{}, fmt.Errorf("%w: %s", common.ErrMissingConfig, key)
		}
	}
	if strings.ContainsRune(cfg.File, filepath.Separator) {
		return Config{}, fmt.Errorf("%w: %s must be a file name, got %q", common.ErrInvalidConfig, KeyLogFile, cfg.File)
	}

	return cfg, nil
}

// LogPath returns the call log file inside dir, or inside the configured
// directory when dir is empty.
func (c Config) LogPath(dir string) string {
	if dir == "" {
		dir = c.Dir
	}
	return filepath.Join(ExpandPath(dir), c.File)
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") || path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}
