package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	dbFile     = "labortimer.db"
	logFile    = "labortimer.log"
	configFile = "config.yaml"
)

type Config struct {
	DataDir    string
	DBPath     string
	LogPath    string
	ConfigPath string
	LogLevel   string
	ExportDir  string
}

// fileConfig is the optional on-disk override file.
type fileConfig struct {
	LogLevel  string `yaml:"log_level"`
	ExportDir string `yaml:"export_dir"`
}

// DefaultDataDir resolves the data directory used when no --data flag is set.
func DefaultDataDir() string {
	if dir := strings.TrimSpace(os.Getenv("LABORTIMER_HOME")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".labortimer"
	}
	return filepath.Join(home, ".labortimer")
}

func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data directory is required")
	}
	cfg := Config{
		DataDir:    dataDir,
		DBPath:     filepath.Join(dataDir, dbFile),
		LogPath:    filepath.Join(dataDir, logFile),
		ConfigPath: filepath.Join(dataDir, configFile),
		LogLevel:   "info",
		ExportDir:  filepath.Join(dataDir, "exports"),
	}
	if err := cfg.loadFile(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile() error {
	raw, err := os.ReadFile(c.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	var file fileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode config: %w", err)
	}
	if level := strings.TrimSpace(file.LogLevel); level != "" {
		c.LogLevel = level
	}
	if dir := strings.TrimSpace(file.ExportDir); dir != "" {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(c.DataDir, dir)
		}
		c.ExportDir = filepath.Clean(dir)
	}
	return nil
}
