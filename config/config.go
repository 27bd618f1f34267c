// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gitlab.com/accumulatenetwork/moveclient/pkg/account"
	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
)

const (
	// EnvPrefix is the prefix of environment variables that override the
	// configuration, for example MOVECLIENT_NODE_URL.
	EnvPrefix = "MOVECLIENT"

	DefaultFile = "moveclient.toml"
)

type StorageType string

const (
	MemoryStorage StorageType = "memory"
	BadgerStorage StorageType = "badger"
)

// LogLevel defines the default and per-module log level.
type LogLevel struct {
	Default string
	Modules [][2]string
}

// SetDefault sets the default log level.
func (l LogLevel) SetDefault(level string) LogLevel {
	l.Default = level
	return l
}

// SetModule sets the log level for a module.
func (l LogLevel) SetModule(module, level string) LogLevel {
	l.Modules = append(l.Modules, [2]string{module, level})
	return l
}

// String converts the log level into a string, for example
// "error;client=debug".
func (l LogLevel) String() string {
	s := new(strings.Builder)
	s.WriteString(l.Default)
	for _, m := range l.Modules {
		fmt.Fprintf(s, ";%s=%s", m[0], m[1])
	}
	return s.String()
}

var DefaultLogLevels = LogLevel{}.
	SetDefault("error").
	SetModule("client", "info").
	// SetModule("node", "debug").
	// SetModule("journal", "debug").
	String()

type Config struct {
	Node        Node                      `toml:"node" mapstructure:"node"`
	Gas         Gas                       `toml:"gas" mapstructure:"gas"`
	Transaction Transaction               `toml:"transaction" mapstructure:"transaction"`
	Finality    Finality                  `toml:"finality" mapstructure:"finality"`
	Logging     Logging                   `toml:"logging" mapstructure:"logging"`
	Journal     Journal                   `toml:"journal" mapstructure:"journal"`
	Keys        map[string]account.Source `toml:"keys,omitempty" mapstructure:"keys" validate:"dive"`
}

type Node struct {
	// URL is the base URL of the node's REST API.
	URL string `toml:"url" mapstructure:"url" validate:"required,url"`

	// ChainID, if set, is used instead of asking the node.
	ChainID uint8 `toml:"chain-id" mapstructure:"chain-id"`

	RequestTimeout time.Duration `toml:"request-timeout" mapstructure:"request-timeout" validate:"gte=0"`
}

type Gas struct {
	MaxAmount uint64 `toml:"max-amount" mapstructure:"max-amount" validate:"gt=0"`
	UnitPrice uint64 `toml:"unit-price" mapstructure:"unit-price" validate:"gt=0"`

	// Estimate uses the node's gas price estimate instead of UnitPrice.
	Estimate bool `toml:"estimate" mapstructure:"estimate"`
}

type Transaction struct {
	// Expiration is the window between building a transaction and its
	// expiration.
	Expiration time.Duration `toml:"expiration" mapstructure:"expiration" validate:"gt=0"`
}

type Finality struct {
	PollInterval time.Duration `toml:"poll-interval" mapstructure:"poll-interval" validate:"gt=0"`
	Timeout      time.Duration `toml:"timeout" mapstructure:"timeout" validate:"gtfield=PollInterval"`

	// MaxRetries bounds consecutive retries of a failed status query.
	MaxRetries uint64 `toml:"max-retries" mapstructure:"max-retries"`
}

type Logging struct {
	Format string `toml:"format" mapstructure:"format" validate:"omitempty,oneof=text plain json"`
	Level  string `toml:"level" mapstructure:"level"`
}

type Journal struct {
	Type StorageType `toml:"type" mapstructure:"type" validate:"oneof=memory badger"`
	Path string      `toml:"path" mapstructure:"path" validate:"required_if=Type badger"`
}

func Default() *Config {
	c := new(Config)
	c.Node.URL = "http://127.0.0.1:8080/v1"
	c.Node.RequestTimeout = 30 * time.Second
	c.Gas.MaxAmount = 200_000
	c.Gas.UnitPrice = 100
	c.Transaction.Expiration = 30 * time.Second
	c.Finality.PollInterval = 250 * time.Millisecond
	c.Finality.Timeout = 20 * time.Second
	c.Finality.MaxRetries = 5
	c.Logging.Format = "text"
	c.Logging.Level = DefaultLogLevels
	c.Journal.Type = MemoryStorage
	c.Journal.Path = filepath.Join("data", "journal")
	return c
}

// Key loads the named key.
func (c *Config) Key(name string) (*account.Account, error) {
	src, ok := c.Keys[strings.ToLower(name)]
	if !ok {
		return nil, errors.NotFound.WithFormat("no key named %q", name)
	}
	a, err := src.Load()
	if err != nil {
		return nil, errors.UnknownError.WithFormat("load key %q: %w", name, err)
	}
	return a, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err != nil {
		return errors.BadRequest.WithFormat("invalid configuration: %w", err)
	}
	return nil
}

func MakeAbsolute(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// Load loads the configuration. Settings are layered: defaults, then the
// file if it is not empty, then environment variables, then flags that were
// set on the command line. Flags maps a setting such as "node.url" to the
// flag that overrides it. Relative journal and dotenv paths are resolved
// against the file's directory.
func Load(file string, flags map[string]*pflag.Flag) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	def, err := toml.Marshal(Default())
	if err != nil {
		return nil, errors.InternalError.WithFormat("encode defaults: %w", err)
	}
	err = v.ReadConfig(bytes.NewReader(def))
	if err != nil {
		return nil, errors.InternalError.WithFormat("read defaults: %w", err)
	}

	if file != "" {
		v.SetConfigFile(file)
		err = v.MergeInConfig()
		if err != nil {
			return nil, errors.BadRequest.WithFormat("read %s: %w", file, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, flag := range flags {
		// An unset flag must not shadow the file or the environment
		if flag == nil || !flag.Changed {
			continue
		}
		err = v.BindPFlag(key, flag)
		if err != nil {
			return nil, errors.InternalError.WithFormat("bind --%s: %w", flag.Name, err)
		}
	}

	c := new(Config)
	err = v.Unmarshal(c)
	if err != nil {
		return nil, errors.BadRequest.WithFormat("unmarshal: %w", err)
	}

	if file != "" {
		dir := filepath.Dir(file)
		c.Journal.Path = MakeAbsolute(dir, c.Journal.Path)
		for name, src := range c.Keys {
			if src.DotEnv != "" {
				src.DotEnv = MakeAbsolute(dir, src.DotEnv)
				c.Keys[name] = src
			}
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Store writes the configuration to the file.
func Store(c *Config, file string) error {
	err := os.MkdirAll(filepath.Dir(file), 0700)
	if err != nil {
		return errors.UnknownError.WithFormat("create config directory: %w", err)
	}

	f, err := os.Create(file)
	if err != nil {
		return errors.UnknownError.WithFormat("create %s: %w", file, err)
	}
	defer f.Close()

	err = toml.NewEncoder(f).Encode(c)
	if err != nil {
		return errors.EncodingError.WithFormat("encode config: %w", err)
	}
	return nil
}
