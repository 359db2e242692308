package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/weave/internal/errors"
)

const (
	DefaultHost      = "localhost"
	DefaultPort      = 8080
	DefaultLivePath  = "/live"
	DefaultHistory   = 64
	DefaultInterval  = 16 * time.Millisecond
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultNamespace = "weave"
	DefaultMetrics   = "/metrics"
)

// FileNames are the configuration file names looked for, in order.
var FileNames = []string{"weave.yaml", "weave.yml", "weave.json"}

// Config is the contents of weave.yaml or weave.json.
type Config struct {
	Server  ServerConfig  `yaml:"server" json:"server"`
	Frame   FrameConfig   `yaml:"frame" json:"frame"`
	Log     LogConfig     `yaml:"log" json:"log"`
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
	Publish PublishConfig `yaml:"publish" json:"publish"`

	path string
}

type ServerConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`

	// LivePath is the WebSocket endpoint of the live server.
	LivePath string `yaml:"livePath,omitempty" json:"livePath,omitempty"`

	// History is the number of passes kept for reconnecting clients.
	History int `yaml:"history,omitempty" json:"history,omitempty"`
}

type FrameConfig struct {
	// Interval is the minimum time between two update passes.
	Interval Duration `yaml:"interval" json:"interval"`
}

type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	Namespace string `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	Path      string `yaml:"path,omitempty" json:"path,omitempty"`
}

// PublishConfig names the S3 location snapshots are uploaded to.
// Credentials come from the environment.
type PublishConfig struct {
	Bucket string `yaml:"bucket,omitempty" json:"bucket,omitempty"`
	Prefix string `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Region string `yaml:"region,omitempty" json:"region,omitempty"`
}

// Duration is a time.Duration written as a string such as "16ms".
type Duration time.Duration

func (d Duration) String() string { return time.Duration(d).String() }

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (any, error) { return d.String(), nil }

func (d Duration) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     DefaultHost,
			Port:     DefaultPort,
			LivePath: DefaultLivePath,
			History:  DefaultHistory,
		},
		Frame: FrameConfig{Interval: Duration(DefaultInterval)},
		Log:   LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
			Path:      DefaultMetrics,
		},
	}
}

// Load reads the configuration file in dir.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("W201").
		WithDetail("No weave.yaml or weave.json in " + dir + ".")
}

// LoadFile reads the configuration at path. JSON files are read by the same
// decoder; unknown fields are rejected.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("W201").WithDetail(path + " does not exist.")
		}
		return nil, errors.New("W202").Wrap(err)
	}

	cfg := New()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.New("W202").
			Wrap(err).
			WithLocationFromError(path, err).
			WithSuggestion("check the indentation and field names in " + filepath.Base(path))
	}
	cfg.path = path
	cfg.applyDefaults()
	return cfg, nil
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string { return c.path }

// applyDefaults fills fields left empty by the file.
func (c *Config) applyDefaults() {
	d := New()
	if c.Server.Host == "" {
		c.Server.Host = d.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.LivePath == "" {
		c.Server.LivePath = d.Server.LivePath
	}
	if c.Server.History == 0 {
		c.Server.History = d.Server.History
	}
	if c.Frame.Interval == 0 {
		c.Frame.Interval = d.Frame.Interval
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = d.Metrics.Namespace
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = d.Metrics.Path
	}
}

// ApplyEnv overrides fields from WEAVE_PORT and WEAVE_LOG_LEVEL.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("WEAVE_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("W203").
				WithDetail("WEAVE_PORT is not a number: " + v + ".")
		}
		c.Server.Port = port
	}
	if v := os.Getenv("WEAVE_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	return nil
}

// Validate checks the values a live server needs.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("W203").
			WithDetail(fmt.Sprintf("Port %d is out of range 1-65535.", c.Server.Port)).
			WithSuggestion("set server.port or WEAVE_PORT")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("W205").WithDetail("Got " + strconv.Quote(c.Log.Format) + ".")
	}
	if c.Frame.Interval <= 0 {
		return errors.New("W206").WithDetail("Got " + c.Frame.Interval.String() + ".")
	}
	return nil
}

// ValidatePublish checks the publish section.
func (c *Config) ValidatePublish() error {
	if c.Publish.Bucket == "" {
		return errors.New("W207").WithSuggestion("add publish.bucket to " + c.fileName())
	}
	return nil
}

func (c *Config) fileName() string {
	if c.path == "" {
		return FileNames[0]
	}
	return filepath.Base(c.path)
}

// ParseLevel converts a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, errors.New("W204").WithDetail("Got " + strconv.Quote(s) + "; use debug, info, warn or error.")
}

// Address returns the listen address of the live server.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// SaveTo writes the configuration to path, as JSON when path ends in
// ".json" and as YAML otherwise.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if filepath.Ext(path) == ".json" {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return errors.New("W202").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("W403").Wrap(err)
	}
	c.path = path
	return nil
}

// Find walks up from startDir to the first directory holding a
// configuration file and returns that file's path.
func Find(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("W201").
				WithDetail("No weave.yaml or weave.json in " + startDir + " or any parent directory.")
		}
		dir = parent
	}
}

// Resolve loads path when given, otherwise the nearest configuration file
// above the working directory, otherwise the defaults. Environment
// overrides are applied and the result is validated.
func Resolve(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	switch {
	case path != "":
		cfg, err = LoadFile(path)
	default:
		var found string
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, wdErr
		}
		if found, err = Find(wd); err == nil {
			cfg, err = LoadFile(found)
		} else if errors.Code(err) == "W201" {
			cfg, err = New(), nil
		}
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
