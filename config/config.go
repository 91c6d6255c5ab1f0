// Package config loads player settings from the XDG config directory, a
// .env file and TETRIS_* environment variables, in that order.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/plus3/tetris/logx"
	"github.com/plus3/tetris/tetris"
)

var cfgFile = "tetris/config.json"

// Environment variables read by Load.
const (
	EnvLockdown = "TETRIS_LOCKDOWN"
	EnvPreview  = "TETRIS_PREVIEW"
	EnvLevel    = "TETRIS_LEVEL"
	EnvSeed     = "TETRIS_SEED"
	EnvLogLevel = "TETRIS_LOG_LEVEL"
)

// MaxPreview bounds the next queue a host may ask for.
const MaxPreview = 7

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s", e.err)
}

type Hint struct {
	Height    float64 `json:"height"`
	Lines     float64 `json:"lines"`
	Holes     float64 `json:"holes"`
	Bumpiness float64 `json:"bumpiness"`
}

// Autoplay tunes the headless simulator.
type Autoplay struct {
	// DropEvery is the number of ticks the autopilot waits before placing
	// the active piece.
	DropEvery int `json:"drop_every"`
	MaxPieces int `json:"max_pieces"`
}

type Config struct {
	Lockdown string   `json:"lockdown"`
	Preview  int      `json:"preview"`
	Level    int      `json:"level"`
	Seed     uint64   `json:"seed"`
	LogLevel string   `json:"log_level"`
	Hint     Hint     `json:"hint"`
	Autoplay Autoplay `json:"autoplay"`
}

var Default = Config{
	Lockdown: tetris.Extended.String(),
	Preview:  5,
	Level:    1,
	LogLevel: "info",
	Hint: Hint{
		Height:    tetris.DefaultWeights.AggregateHeight,
		Lines:     tetris.DefaultWeights.CompletedLines,
		Holes:     tetris.DefaultWeights.Holes,
		Bumpiness: tetris.DefaultWeights.Bumpiness,
	},
	Autoplay: Autoplay{
		DropEvery: 10,
		MaxPieces: 1000,
	},
}

// Load builds the effective configuration. A missing config file or .env is
// not an error.
func Load() (*Config, error) {
	path, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		path = ""
	}
	return LoadFile(path)
}

// LoadFile is Load with an explicit config file path. An empty path skips
// the file.
func LoadFile(path string) (*Config, error) {
	config := Default
	if path != "" {
		if err := readCfgFile(path, &config); err != nil {
			return nil, err
		}
	}

	_ = godotenv.Load()
	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvLockdown); ok {
		c.Lockdown = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvPreview); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &InvalidConfig{fmt.Sprintf("%s: %v", EnvPreview, err)}
		}
		c.Preview = n
	}
	if v, ok := os.LookupEnv(EnvLevel); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &InvalidConfig{fmt.Sprintf("%s: %v", EnvLevel, err)}
		}
		c.Level = n
	}
	if v, ok := os.LookupEnv(EnvSeed); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return &InvalidConfig{fmt.Sprintf("%s: %v", EnvSeed, err)}
		}
		c.Seed = n
	}
	return nil
}

func (c *Config) Validate() error {
	if _, err := tetris.ParseLockdownMode(c.Lockdown); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if c.Preview < tetris.MinPreview || c.Preview > MaxPreview {
		return &InvalidConfig{fmt.Sprintf("preview must be between %d and %d, got %d", tetris.MinPreview, MaxPreview, c.Preview)}
	}
	if c.Level < 1 || c.Level > tetris.MaxLevel {
		return &InvalidConfig{fmt.Sprintf("level must be between 1 and %d, got %d", tetris.MaxLevel, c.Level)}
	}
	if !logx.ValidLevel(c.LogLevel) {
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.LogLevel)}
	}
	if c.Autoplay.DropEvery < 0 || c.Autoplay.MaxPieces < 0 {
		return &InvalidConfig{"autoplay settings must not be negative"}
	}
	return nil
}

// LockdownMode returns the parsed lockdown mode. Validate has already
// rejected unknown names.
func (c *Config) LockdownMode() tetris.LockdownMode {
	mode, _ := tetris.ParseLockdownMode(c.Lockdown)
	return mode
}

func (c *Config) Weights() tetris.Weights {
	return tetris.Weights{
		AggregateHeight: c.Hint.Height,
		CompletedLines:  c.Hint.Lines,
		Holes:           c.Hint.Holes,
		Bumpiness:       c.Hint.Bumpiness,
	}
}

// InitialLines is the cleared line count that puts a new game on Level.
func (c *Config) InitialLines() int {
	return (c.Level - 1) * 10
}

// Save writes the configuration to the user's XDG config directory.
func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return c.SaveFile(absPath)
}

func (c *Config) SaveFile(path string) error {
	return saveCfgFile(path, c, 0664)
}

func saveCfgFile(filePath string, a any, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a any) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
