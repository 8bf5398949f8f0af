package config

import (
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/dylan-thinnes/solsys/oracle"
)

// Environment variables overriding configuration.
const (
	EnvMsieve      = "SOLSYS_MSIEVE"
	EnvPrimecount  = "SOLSYS_PRIMECOUNT"
	EnvThreshold   = "SOLSYS_PI_THRESHOLD"
	EnvCacheSize   = "SOLSYS_CACHE_SIZE"
	EnvGracePeriod = "SOLSYS_GRACE_PERIOD"
)

// Config stores configuration of the oracles and the tree builder.
type Config struct {
	// Msieve configures the factorization process.
	Msieve Process `yaml:"msieve"`

	// Primecount configures the prime-counting process.
	Primecount Process `yaml:"primecount"`

	// Threshold is the decimal value below which pi(x) is computed exactly.
	// Li(x) is used above it.
	Threshold string `yaml:"threshold"`

	// CacheSize is the number of oracle results memoized. Zero disables caching.
	CacheSize int `yaml:"cache_size"`
}

// Process configures external oracle process.
type Process struct {
	Path        string        `yaml:"path"`
	Args        []string      `yaml:"args"`
	Dir         string        `yaml:"dir"`
	GracePeriod time.Duration `yaml:"grace_period"`
}

// ProcessConfig converts configuration to the form expected by oracles.
func (p Process) ProcessConfig() oracle.ProcessConfig {
	return oracle.ProcessConfig{
		Path:        p.Path,
		Args:        p.Args,
		Dir:         p.Dir,
		GracePeriod: p.GracePeriod,
	}
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Msieve: Process{
			Path:        "msieve",
			Args:        []string{"-q"},
			GracePeriod: oracle.DefaultGracePeriod,
		},
		Primecount: Process{
			Path:        "primecount",
			GracePeriod: oracle.DefaultGracePeriod,
		},
		Threshold: oracle.DefaultThreshold.String(),
		CacheSize: oracle.DefaultCacheSize,
	}
}

// Load builds configuration from defaults, optional YAML file and environment.
// Variables defined in .env file of the working directory are loaded into environment first.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	config := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "reading config file %s failed", path)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return Config{}, errors.Wrapf(err, "parsing config file %s failed", path)
		}
	}

	if err := config.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvMsieve)); v != "" {
		c.Msieve.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPrimecount)); v != "" {
		c.Primecount.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvThreshold)); v != "" {
		c.Threshold = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCacheSize)); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", EnvCacheSize)
		}
		c.CacheSize = size
	}
	if v := strings.TrimSpace(os.Getenv(EnvGracePeriod)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", EnvGracePeriod)
		}
		c.Msieve.GracePeriod = d
		c.Primecount.GracePeriod = d
	}
	return nil
}

// Validate checks that configuration is usable.
func (c Config) Validate() error {
	if c.Msieve.Path == "" {
		return errors.New("msieve path is empty")
	}
	if c.Primecount.Path == "" {
		return errors.New("primecount path is empty")
	}
	if _, err := c.ThresholdValue(); err != nil {
		return err
	}
	if c.CacheSize < 0 {
		return errors.Errorf("cache size must not be negative, got %d", c.CacheSize)
	}
	if c.Msieve.GracePeriod < 0 || c.Primecount.GracePeriod < 0 {
		return errors.New("grace period must not be negative")
	}
	return nil
}

// ThresholdValue returns parsed threshold.
func (c Config) ThresholdValue() (*big.Int, error) {
	v, ok := new(big.Int).SetString(c.Threshold, 10)
	if !ok || v.Sign() <= 0 {
		return nil, errors.Errorf("threshold must be a positive integer, got %q", c.Threshold)
	}
	return v, nil
}

// Oracles creates oracles described by the configuration, wrapped with caches if enabled.
func (c Config) Oracles() (oracle.Factorizer, oracle.Statistic, error) {
	var factorizer oracle.Factorizer = oracle.NewMsieve(c.Msieve.ProcessConfig())
	var statistic oracle.Statistic = oracle.NewPrimecount(c.Primecount.ProcessConfig())
	if c.CacheSize == 0 {
		return factorizer, statistic, nil
	}

	factorizer, err := oracle.NewCachedFactorizer(factorizer, c.CacheSize)
	if err != nil {
		return nil, nil, err
	}
	statistic, err = oracle.NewCachedStatistic(statistic, c.CacheSize)
	if err != nil {
		return nil, nil, err
	}
	return factorizer, statistic, nil
}
