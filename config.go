package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Gift struct {
	Glyph   string `yaml:"glyph"`
	Title   string `yaml:"title"`
	Caption string `yaml:"caption"`
}

type Tuning struct {
	ClicksToOpen    int           `yaml:"clicks_to_open"`
	BoxScaleStep    float64       `yaml:"box_scale_step"`
	CompletionDelay time.Duration `yaml:"completion_delay"`
	ShakeDuration   time.Duration `yaml:"shake_duration"`
	PopDuration     time.Duration `yaml:"pop_duration"`
	SlideDuration   time.Duration `yaml:"slide_duration"`

	MaxNoClicks    int           `yaml:"max_no_clicks"`
	YesGrowth      float64       `yaml:"yes_growth"`
	NoShrink       float64       `yaml:"no_shrink"`
	NoMinScale     float64       `yaml:"no_min_scale"`
	Padding        float64       `yaml:"padding"`
	AvoidMargin    float64       `yaml:"avoid_margin"`
	GrowDuration   time.Duration `yaml:"grow_duration"`
	WiggleDuration time.Duration `yaml:"wiggle_duration"`
	BounceDuration time.Duration `yaml:"bounce_duration"`
}

type Config struct {
	SaveDirectory  string `yaml:"save_directory"`
	Mouse          bool   `yaml:"mouse"`
	Title          string `yaml:"title"`
	Question       string `yaml:"question"`
	ContinueLabel  string `yaml:"continue_label"`
	AcceptLabel    string `yaml:"accept_label"`
	DeclineLabel   string `yaml:"decline_label"`
	ConvertedLabel string `yaml:"converted_label"`
	RevealPrompt   string `yaml:"reveal_prompt"`
	Celebration    string `yaml:"celebration"`
	RestartLabel   string `yaml:"restart_label"`
	Gifts          []Gift `yaml:"gifts"`
	Tuning         Tuning `yaml:"tuning"`
}

// envConfig holds the settings that can only come from the environment.
type envConfig struct {
	ConfigPath string `env:"BEMINE_CONFIG"`
	SaveDir    string `env:"BEMINE_SAVE_DIR"`
	LogFile    string `env:"BEMINE_LOG_FILE"`
	Seed       uint64 `env:"BEMINE_SEED"`
}

func defaultTuning() Tuning {
	return Tuning{
		ClicksToOpen:    5,
		BoxScaleStep:    0.06,
		CompletionDelay: 2 * time.Second,
		ShakeDuration:   400 * time.Millisecond,
		PopDuration:     400 * time.Millisecond,
		SlideDuration:   500 * time.Millisecond,

		MaxNoClicks:    5,
		YesGrowth:      0.15,
		NoShrink:       0.10,
		NoMinScale:     0.6,
		Padding:        20,
		AvoidMargin:    100,
		GrowDuration:   300 * time.Millisecond,
		WiggleDuration: 300 * time.Millisecond,
		BounceDuration: 500 * time.Millisecond,
	}
}

func defaultConfig() *Config {
	return &Config{
		SaveDirectory:  "",
		Mouse:          true,
		Title:          "Hey you 💌",
		Question:       "Will you be my Valentine?",
		ContinueLabel:  "Continue",
		AcceptLabel:    "Yes 💖",
		DeclineLabel:   "No, I hate you",
		ConvertedLabel: "Yes 💖",
		RevealPrompt:   "Tap each gift until it opens",
		Celebration:    "Yay! Happy Valentine's Day 💘",
		RestartLabel:   "Start over",
		Gifts: []Gift{
			{
				Glyph:   "🌸",
				Title:   "Flowers",
				Caption: "Because every day with you deserves a little extra color.",
			},
			{
				Glyph:   "🍬",
				Title:   "PB&J M&Ms",
				Caption: "Because you love PB&Js… and now they love you back.",
			},
			{
				Glyph:   "🍓",
				Title:   "Chocolate covered raspberries",
				Caption: "Because berries are good, but berries in chocolate are elite.",
			},
		},
		Tuning: defaultTuning(),
	}
}

func loadEnv() (envConfig, error) {
	var e envConfig
	if err := env.Parse(&e); err != nil {
		return e, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// loadConfig returns the defaults overlaid with ~/.beminerc (or
// BEMINE_CONFIG). A missing file is not an error; a broken one returns the
// defaults together with the error so the UI can still start.
func loadConfig(e envConfig) (*Config, error) {
	config := defaultConfig()

	path := e.ConfigPath
	if path == "" {
		if homeDir, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(homeDir, ".beminerc")
		}
	}

	if path != "" {
		err := loadConfigFile(path, config)
		// Only an explicitly requested file has to exist
		if err != nil && !(errors.Is(err, os.ErrNotExist) && e.ConfigPath == "") {
			return fallbackConfig(e), err
		}
	}

	config.applyEnv(e)
	if err := config.normalize(); err != nil {
		return fallbackConfig(e), err
	}
	return config, nil
}

// fallbackConfig is what the UI runs with when the config file is unusable.
// Environment overrides still apply.
func fallbackConfig(e envConfig) *Config {
	config := defaultConfig()
	config.applyEnv(e)
	if err := config.normalize(); err != nil {
		config.SaveDirectory = ""
	}
	return config
}

func (c *Config) applyEnv(e envConfig) {
	if e.SaveDir != "" {
		c.SaveDirectory = e.SaveDir
	}
}

func loadConfigFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) normalize() error {
	if strings.HasPrefix(c.SaveDirectory, "~") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			c.SaveDirectory = filepath.Join(homeDir, strings.TrimPrefix(c.SaveDirectory, "~"))
		}
	}
	if c.SaveDirectory != "" && !filepath.IsAbs(c.SaveDirectory) {
		if absPath, err := filepath.Abs(c.SaveDirectory); err == nil {
			c.SaveDirectory = absPath
		}
	}
	return c.validate()
}

func (c *Config) validate() error {
	t := c.Tuning
	switch {
	case len(c.Gifts) == 0:
		return errors.New("config: at least one gift is required")
	case t.ClicksToOpen < 1:
		return fmt.Errorf("config: clicks_to_open must be at least 1, got %d", t.ClicksToOpen)
	case t.MaxNoClicks < 1:
		return fmt.Errorf("config: max_no_clicks must be at least 1, got %d", t.MaxNoClicks)
	case t.NoMinScale <= 0 || t.NoMinScale > 1:
		return fmt.Errorf("config: no_min_scale must be in (0, 1], got %g", t.NoMinScale)
	case t.Padding < 0 || t.AvoidMargin < 0:
		return errors.New("config: padding and avoid_margin must not be negative")
	case t.BoxScaleStep < 0 || t.YesGrowth < 0 || t.NoShrink < 0:
		return errors.New("config: box_scale_step, yes_growth and no_shrink must not be negative")
	}
	for _, d := range []time.Duration{
		t.CompletionDelay, t.ShakeDuration, t.PopDuration, t.SlideDuration,
		t.GrowDuration, t.WiggleDuration, t.BounceDuration,
	} {
		if d < 0 {
			return fmt.Errorf("config: durations must not be negative, got %s", d)
		}
	}
	return nil
}

func (c *Config) giftTuning() GiftTuning {
	return GiftTuning{
		ClicksToOpen:    c.Tuning.ClicksToOpen,
		BaseScale:       1,
		ScaleIncrement:  c.Tuning.BoxScaleStep,
		CompletionDelay: c.Tuning.CompletionDelay,
		ShakeDuration:   c.Tuning.ShakeDuration,
		PopDuration:     c.Tuning.PopDuration,
		SlideDuration:   c.Tuning.SlideDuration,
	}
}

func (c *Config) evasiveTuning() EvasiveTuning {
	return EvasiveTuning{
		Threshold:      c.Tuning.MaxNoClicks,
		TargetGrowth:   c.Tuning.YesGrowth,
		DecoyShrink:    c.Tuning.NoShrink,
		DecoyMinScale:  c.Tuning.NoMinScale,
		Padding:        c.Tuning.Padding,
		AvoidMargin:    c.Tuning.AvoidMargin,
		GrowDuration:   c.Tuning.GrowDuration,
		WiggleDuration: c.Tuning.WiggleDuration,
		BounceDuration: c.Tuning.BounceDuration,
	}
}

func (c *Config) GetSavePath(filename string) (string, error) {
	if c.SaveDirectory == "" {
		return filename, nil
	}
	if err := os.MkdirAll(c.SaveDirectory, 0755); err != nil {
		return "", fmt.Errorf("create save directory: %w", err)
	}
	return filepath.Join(c.SaveDirectory, filename), nil
}
