package isoloot

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AgentConfig is one entry of the starting roster
type AgentConfig struct {
	Name  string  `yaml:"name"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Color string  `yaml:"color"`
}

// MapConfig sizes and seeds the tile map
type MapConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Generator string `yaml:"generator"`
	Seed      int64  `yaml:"seed"`
}

// Config is the server configuration
type Config struct {
	SSHListen       string        `yaml:"ssh_listen"`
	WSListen        string        `yaml:"ws_listen"`
	HostKeyFile     string        `yaml:"host_key_file"`
	FrameRateHz     int           `yaml:"frame_rate_hz"`
	MaxStepSeconds  float64       `yaml:"max_step_seconds"`
	SnapshotEveryMs int           `yaml:"snapshot_every_ms"`
	Welcome         string        `yaml:"welcome"`
	Map             MapConfig     `yaml:"map"`
	Agents          []AgentConfig `yaml:"agents"`
}

// DefaultConfig is a 12x12 map with the three stock agents
func DefaultConfig() Config {
	return Config{
		SSHListen:       ":2222",
		WSListen:        ":8080",
		FrameRateHz:     60,
		MaxStepSeconds:  0.1,
		SnapshotEveryMs: 250,
		Welcome:         "Welcome to ISO Loot! Type a command below.",
		Map: MapConfig{
			Width:     12,
			Height:    12,
			Generator: GeneratorUniform,
			Seed:      1},
		Agents: []AgentConfig{
			{Name: "Atlas", X: 2, Y: 2, Color: "#e74c3c"},
			{Name: "Nova", X: 6, Y: 4, Color: "#3498db"},
			{Name: "Echo", X: 9, Y: 8, Color: "#2ecc71"},
		}}
}

// Environment variables that override the config file
const (
	EnvSSHListen   = "ISOLOOT_SSH_LISTEN"
	EnvWSListen    = "ISOLOOT_WS_LISTEN"
	EnvHostKeyFile = "ISOLOOT_HOST_KEY"
	EnvSeed        = "ISOLOOT_SEED"
)

// LoadEnv reads .env style files into the process environment. Missing
// files are skipped.
func LoadEnv(files ...string) error {
	present := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			present = append(present, file)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

// LoadConfig decodes path over DefaultConfig, then applies environment
// overrides. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return config, err
		}
		log.Printf("No config at %s, using defaults", path)
	} else if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}

	if err := config.applyEnv(); err != nil {
		return config, err
	}

	return config, config.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvSSHListen); v != "" {
		c.SSHListen = v
	}
	if v := os.Getenv(EnvWSListen); v != "" {
		c.WSListen = v
	}
	if v := os.Getenv(EnvHostKeyFile); v != "" {
		c.HostKeyFile = v
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Map.Seed = seed
	}
	return nil
}

// Validate checks map size, generator and roster names
func (c Config) Validate() error {
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		return fmt.Errorf("map %dx%d: %w", c.Map.Width, c.Map.Height, ErrBadMapSize)
	}
	if !KnownGenerator(c.Map.Generator) {
		return fmt.Errorf("%q: %w", c.Map.Generator, ErrUnknownGenerator)
	}
	if c.FrameRateHz <= 0 {
		return fmt.Errorf("frame_rate_hz must be positive, got %d", c.FrameRateHz)
	}
	if c.MaxStepSeconds <= 0 {
		return fmt.Errorf("max_step_seconds must be positive, got %v", c.MaxStepSeconds)
	}

	seen := make(map[string]bool)
	for _, agent := range c.Agents {
		if agent.Name == "" {
			return errors.New("agent with empty name")
		}
		key := agentKey(agent.Name)
		if key == BroadcastTarget {
			return fmt.Errorf("%q is reserved for broadcasts", agent.Name)
		}
		if seen[key] {
			return fmt.Errorf("%q: %w", agent.Name, ErrDuplicateAgent)
		}
		seen[key] = true
	}

	return nil
}
