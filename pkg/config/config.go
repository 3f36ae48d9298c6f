// Package config resolves analysis settings with spf13/viper.
//
// Precedence, lowest first: Default, the YAML file, CLUSO_* environment
// variables, and command-line flags bound with BindFlags that the user set.
// A setting's environment variable is its key upper-cased with dots turned
// into underscores, so output.format is read from CLUSO_OUTPUT_FORMAT.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for unreadable files and failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Output formats
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatTable   = "table"
	FormatSummary = "summary"
)

// Default values
const (
	DefaultFormat    = FormatText
	DefaultPrecision = 4
	DefaultTop       = 10
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds every setting of an analysis run.
type Config struct {
	// Workers is the number of goroutines for the counting pass. 1 is
	// sequential and 0 asks for one worker per CPU.
	Workers int `yaml:"workers" mapstructure:"workers" validate:"min=0,max=1024"`

	// ChunkSize overrides the number of nodes per parallel task (0 = auto).
	ChunkSize int `yaml:"chunk_size" mapstructure:"chunk_size" validate:"min=0"`

	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Input   InputConfig   `yaml:"input" mapstructure:"input"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// OutputConfig controls the report.
type OutputConfig struct {
	Format    string `yaml:"format" mapstructure:"format" validate:"oneof=text json table summary"`
	Precision int    `yaml:"precision" mapstructure:"precision" validate:"min=0,max=12"`
	// Top is the number of highest-scoring nodes listed in table and json
	// reports.
	Top int `yaml:"top" mapstructure:"top" validate:"min=0,max=10000"`
	// PerNode lists every node's triangle count in the triangles command.
	PerNode bool `yaml:"per_node" mapstructure:"per_node"`
}

// LogConfig controls the diagnostic logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=text json"`
}

// InputConfig controls edge-list sources.
type InputConfig struct {
	Mmap         bool           `yaml:"mmap" mapstructure:"mmap"`
	MaxLineBytes int            `yaml:"max_line_bytes" mapstructure:"max_line_bytes" validate:"min=0"`
	S3           S3Config       `yaml:"s3" mapstructure:"s3"`
	Postgres     PostgresConfig `yaml:"postgres" mapstructure:"postgres"`
}

// S3Config holds settings for s3:// sources. Credentials left empty fall
// back to the AWS SDK default chain.
type S3Config struct {
	Region          string `yaml:"region" mapstructure:"region"`
	Endpoint        string `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,url"`
	AccessKeyID     string `yaml:"access_key_id" mapstructure:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key" mapstructure:"secret_access_key" validate:"required_with=AccessKeyID"`
	SessionToken    string `yaml:"session_token" mapstructure:"session_token"`
	UsePathStyle    bool   `yaml:"use_path_style" mapstructure:"use_path_style"`
}

// PostgresConfig holds settings for postgres:// sources.
type PostgresConfig struct {
	Query string `yaml:"query" mapstructure:"query"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	// File is written in the node_exporter textfile format after a run.
	File string `yaml:"file" mapstructure:"file"`
}

// Default returns a sequential configuration producing the plain text
// report.
func Default() *Config {
	return &Config{
		Workers: 1,
		Output: OutputConfig{
			Format:    DefaultFormat,
			Precision: DefaultPrecision,
			Top:       DefaultTop,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "CLUSO"

// Keys of the settings that have command-line flags.
const (
	KeyWorkers     = "workers"
	KeyChunkSize   = "chunk_size"
	KeyFormat      = "output.format"
	KeyPrecision   = "output.precision"
	KeyTop         = "output.top"
	KeyPerNode     = "output.per_node"
	KeyLogLevel    = "log.level"
	KeyLogFormat   = "log.format"
	KeyMetricsFile = "metrics.file"
	KeyMmap        = "input.mmap"
	KeyS3Region    = "input.s3.region"
	KeyS3Endpoint  = "input.s3.endpoint"
	KeyS3PathStyle = "input.s3.use_path_style"
	KeyPGQuery     = "input.postgres.query"
)

// Loader layers the configuration sources of one run.
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a Loader seeded with Default and reading CLUSO_*
// variables.
func NewLoader() (*Loader, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default for AutomaticEnv to reach it on Unmarshal.
	data, err := yaml.Marshal(Default())
	if err != nil {
		return nil, fmt.Errorf("failed to encode defaults: %w", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to decode defaults: %w", err)
	}
	setDefaults(v, "", tree)

	return &Loader{v: v}, nil
}

func setDefaults(v *viper.Viper, prefix string, tree map[string]any) {
	for k, value := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := value.(map[string]any); ok {
			setDefaults(v, key, sub)
			continue
		}
		v.SetDefault(key, value)
	}
}

// BindFlags makes each flag in keys (flag name to setting key) override its
// setting once the user sets it. Flags missing from fs are skipped.
func (l *Loader) BindFlags(fs *pflag.FlagSet, keys map[string]string) error {
	for name, key := range keys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := l.v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}
	return nil
}

// Load merges the YAML file at path (if path is not empty) and decodes the
// layered settings. The result is not validated.
func (l *Loader) Load(path string) (*Config, error) {
	if path != "" {
		if err := l.mergeFile(path); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &cfg, nil
}

func (l *Loader) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: failed to read %s: %v", ErrInvalidConfig, path, err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, path, err)
	}
	if err := l.v.MergeConfigMap(tree); err != nil {
		return fmt.Errorf("%w: failed to merge %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

// Load resolves the defaults, the YAML file at path and the environment.
func Load(path string) (*Config, error) {
	l, err := NewLoader()
	if err != nil {
		return nil, err
	}
	return l.Load(path)
}
