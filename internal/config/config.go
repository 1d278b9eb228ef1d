// Package config loads the server-side configuration from file and
// environment, with hot reload of the game tuning knobs.
package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

// Config is the full server configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Game   GameConfig   `mapstructure:"game"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	WebDir          string        `mapstructure:"web_dir"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// GameConfig holds the tuning knobs handed to the game session. The delay
// values reach the WASM client through the go-app handler environment.
type GameConfig struct {
	DailyPairs    int           `mapstructure:"daily_pairs"`
	MatchDelay    time.Duration `mapstructure:"match_delay"`
	MismatchDelay time.Duration `mapstructure:"mismatch_delay"`
	GameOverDelay time.Duration `mapstructure:"game_over_delay"`
	RolloverPoll  time.Duration `mapstructure:"rollover_poll"`
}

var (
	mu  sync.RWMutex
	cfg *Config
	v   *viper.Viper
)

// Init reads the configuration. With an empty path it looks for
// ricordo.yaml in ./config and the working directory; a missing file just
// means defaults. Environment variables use the RICORDO_ prefix
// (e.g. RICORDO_SERVER_ADDR).
func Init(configPath string) error {
	vp := viper.New()
	if configPath != "" {
		vp.SetConfigFile(configPath)
	} else {
		vp.SetConfigName("ricordo")
		vp.SetConfigType("yaml")
		vp.AddConfigPath("./config")
		vp.AddConfigPath(".")
	}

	vp.SetEnvPrefix("RICORDO")
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	setDefaults(vp)

	if err := vp.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	c := &Config{}
	if err := vp.Unmarshal(c); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	if err := c.validate(); err != nil {
		return err
	}

	mu.Lock()
	cfg = c
	v = vp
	mu.Unlock()
	return nil
}

func setDefaults(vp *viper.Viper) {
	vp.SetDefault("server.addr", "")
	vp.SetDefault("server.web_dir", "web")
	vp.SetDefault("server.shutdown_timeout", "5s")

	vp.SetDefault("game.daily_pairs", 6)
	vp.SetDefault("game.match_delay", "300ms")
	vp.SetDefault("game.mismatch_delay", "2s")
	vp.SetDefault("game.game_over_delay", "1200ms")
	vp.SetDefault("game.rollover_poll", "1m")
}

func (c *Config) validate() error {
	if c.Game.DailyPairs < 1 {
		return fmt.Errorf("game.daily_pairs must be at least 1, got %d", c.Game.DailyPairs)
	}
	for name, d := range map[string]time.Duration{
		"game.match_delay":     c.Game.MatchDelay,
		"game.mismatch_delay":  c.Game.MismatchDelay,
		"game.game_over_delay": c.Game.GameOverDelay,
		"game.rollover_poll":   c.Game.RolloverPoll,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, d)
		}
	}
	return nil
}

// Get returns the current configuration. Init must have been called.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// Watch re-reads the configuration whenever the file changes and passes
// the result to callback. Invalid edits are logged and skipped, keeping
// the previous configuration live.
func Watch(callback func(*Config)) {
	mu.RLock()
	vp := v
	mu.RUnlock()
	if vp == nil {
		return
	}

	vp.OnConfigChange(func(e fsnotify.Event) {
		c := &Config{}
		if err := vp.Unmarshal(c); err != nil {
			klog.Errorf("config reload failed: %v", err)
			return
		}
		if err := c.validate(); err != nil {
			klog.Errorf("config reload rejected: %v", err)
			return
		}

		mu.Lock()
		cfg = c
		mu.Unlock()

		klog.Infof("config reloaded from %s", e.Name)
		if callback != nil {
			callback(c)
		}
	})
	vp.WatchConfig()
}
