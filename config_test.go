package isoloot

import (
	"errors"
	"os"
	"path/filepath"

	. "gopkg.in/check.v1"
)

type ConfigSuite struct{}

var _ = Suite(&ConfigSuite{})

func (s *ConfigSuite) SetUpTest(c *C) {
	for _, name := range []string{EnvSSHListen, EnvWSListen, EnvHostKeyFile, EnvSeed} {
		os.Unsetenv(name)
	}
}

func (s *ConfigSuite) TearDownTest(c *C) {
	s.SetUpTest(c)
}

func (s *ConfigSuite) TestDefaultsValidate(c *C) {
	config := DefaultConfig()
	c.Assert(config.Validate(), IsNil)
	c.Assert(config.Agents, HasLen, 3)
	c.Assert(config.Map.Width, Equals, 12)
}

func (s *ConfigSuite) TestMissingFileUsesDefaults(c *C) {
	config, err := LoadConfig(filepath.Join(c.MkDir(), "nope.yaml"))
	c.Assert(err, IsNil)
	c.Assert(config, DeepEquals, DefaultConfig())
}

func (s *ConfigSuite) TestLoadYAML(c *C) {
	path := filepath.Join(c.MkDir(), "config.yaml")
	data := `
ssh_listen: ":2022"
map:
  width: 20
  height: 10
  generator: noise
  seed: 42
agents:
  - name: Scout
    x: 1
    y: 1
    color: "#ffffff"
`
	c.Assert(os.WriteFile(path, []byte(data), 0o644), IsNil)

	config, err := LoadConfig(path)
	c.Assert(err, IsNil)
	c.Assert(config.SSHListen, Equals, ":2022")
	c.Assert(config.WSListen, Equals, ":8080")
	c.Assert(config.Map, DeepEquals, MapConfig{Width: 20, Height: 10, Generator: GeneratorNoise, Seed: 42})
	c.Assert(config.Agents, DeepEquals, []AgentConfig{{Name: "Scout", X: 1, Y: 1, Color: "#ffffff"}})
}

func (s *ConfigSuite) TestBadYAML(c *C) {
	path := filepath.Join(c.MkDir(), "config.yaml")
	c.Assert(os.WriteFile(path, []byte("map: [1, 2"), 0o644), IsNil)

	_, err := LoadConfig(path)
	c.Assert(err, NotNil)
}

func (s *ConfigSuite) TestValidateRoster(c *C) {
	config := DefaultConfig()
	config.Agents = append(config.Agents, AgentConfig{Name: "ATLAS"})
	c.Assert(errors.Is(config.Validate(), ErrDuplicateAgent), Equals, true)

	config = DefaultConfig()
	config.Agents = append(config.Agents, AgentConfig{Name: "All"})
	c.Assert(config.Validate(), ErrorMatches, `"All" is reserved.*`)

	config = DefaultConfig()
	config.Agents = append(config.Agents, AgentConfig{})
	c.Assert(config.Validate(), NotNil)
}

func (s *ConfigSuite) TestValidateMap(c *C) {
	config := DefaultConfig()
	config.Map.Width = 0
	c.Assert(errors.Is(config.Validate(), ErrBadMapSize), Equals, true)

	config = DefaultConfig()
	config.Map.Generator = "fractal"
	c.Assert(errors.Is(config.Validate(), ErrUnknownGenerator), Equals, true)

	config = DefaultConfig()
	config.FrameRateHz = 0
	c.Assert(config.Validate(), NotNil)
}

func (s *ConfigSuite) TestEnvOverrides(c *C) {
	os.Setenv(EnvSeed, "99")
	os.Setenv(EnvSSHListen, ":3333")

	config, err := LoadConfig(filepath.Join(c.MkDir(), "nope.yaml"))
	c.Assert(err, IsNil)
	c.Assert(config.Map.Seed, Equals, int64(99))
	c.Assert(config.SSHListen, Equals, ":3333")
}

func (s *ConfigSuite) TestBadSeed(c *C) {
	os.Setenv(EnvSeed, "forty")

	_, err := LoadConfig(filepath.Join(c.MkDir(), "nope.yaml"))
	c.Assert(err, ErrorMatches, EnvSeed+`: .*`)
}

func (s *ConfigSuite) TestLoadEnv(c *C) {
	dir := c.MkDir()
	path := filepath.Join(dir, ".env")
	c.Assert(os.WriteFile(path, []byte(EnvWSListen+"=:9999\n"), 0o644), IsNil)

	c.Assert(LoadEnv(filepath.Join(dir, "missing.env"), path), IsNil)
	c.Assert(os.Getenv(EnvWSListen), Equals, ":9999")

	c.Assert(LoadEnv(filepath.Join(dir, "missing.env")), IsNil)
}
