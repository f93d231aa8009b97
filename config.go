package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"redline/internal/markup"
)

type Config struct {
	SaveDirectory string        `env:"REDLINE_SAVE_DIR"`
	Database      string        `env:"REDLINE_DB"`
	Confirmations bool          `env:"REDLINE_CONFIRM"`
	HistoryLimit  int           `env:"REDLINE_HISTORY_LIMIT"`
	LoadTimeout   time.Duration `env:"REDLINE_LOAD_TIMEOUT"`
	Color         string        `env:"REDLINE_COLOR"`
	Debug         bool          `env:"REDLINE_DEBUG"`
}

func defaultConfig() *Config {
	return &Config{
		SaveDirectory: "",
		Database:      "",
		Confirmations: true,
		HistoryLimit:  0,
		LoadTimeout:   markup.DefaultLoadTimeout,
		Color:         markup.Red.String(),
	}
}

// loadConfig reads ~/.redlinerc and then applies REDLINE_* environment
// overrides.
func loadConfig() (*Config, error) {
	config := defaultConfig()

	homeDir, err := os.UserHomeDir()
	if err == nil {
		if err := config.readFile(filepath.Join(homeDir, ".redlinerc"), homeDir); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	config.SaveDirectory = expandPath(config.SaveDirectory, homeDir)
	config.Database = expandPath(config.Database, homeDir)
	return config, nil
}

func (c *Config) readFile(path, homeDir string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "savedirectory", "save_directory", "savedir":
			c.SaveDirectory = expandPath(value, homeDir)
		case "database", "db":
			c.Database = expandPath(value, homeDir)
		case "confirmations", "confirm":
			c.Confirmations = strings.ToLower(value) == "true"
		case "historylimit", "history_limit":
			if n, err := strconv.Atoi(value); err == nil && n >= 0 {
				c.HistoryLimit = n
			}
		case "loadtimeout", "load_timeout":
			if d, err := time.ParseDuration(value); err == nil && d > 0 {
				c.LoadTimeout = d
			}
		case "color", "colour":
			c.Color = value
		case "debug":
			c.Debug = strings.ToLower(value) == "true"
		}
	}
	return scanner.Err()
}

// PenColor returns the configured starting color, falling back to red.
func (c *Config) PenColor() markup.Color {
	color, err := markup.ParseColor(c.Color)
	if err != nil {
		return markup.Red
	}
	return color
}

func expandPath(value, homeDir string) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}
