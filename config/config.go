// Package config provides configuration loading and access for the village simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	World        WorldConfig        `yaml:"world"`
	Population   PopulationConfig   `yaml:"population"`
	Agents       []AgentTemplate    `yaml:"agents"`
	Buildings    []BuildingConfig   `yaml:"buildings"`
	Movement     MovementConfig     `yaml:"movement"`
	Encounter    EncounterConfig    `yaml:"encounter"`
	Relationship RelationshipConfig `yaml:"relationship"`
	Dialogue     DialogueConfig     `yaml:"dialogue"`
	Reactions    ReactionsConfig    `yaml:"reactions"`
	Decree       DecreeConfig       `yaml:"decree"`
	Baby         BabyConfig         `yaml:"baby"`
	Bubbles      BubblesConfig      `yaml:"bubbles"`
	Gateway      GatewayConfig      `yaml:"gateway"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
	Observer     ObserverConfig     `yaml:"observer"`
	Chronicle    ChronicleConfig    `yaml:"chronicle"`
	Objects      []ObjectPreset     `yaml:"objects"`
	Decrees      []string           `yaml:"decrees"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds map dimensions and sampling parameters.
type WorldConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	EdgeMargin     float64 `yaml:"edge_margin"`      // RandomPosition keeps this far from every edge
	InteriorMargin float64 `yaml:"interior_margin"`  // InsideBuilding insets rooms by this much
	HomeChance     float64 `yaml:"home_chance"`      // Probability of routing home
	PartnerChance  float64 `yaml:"partner_chance"`   // Probability of routing to a partner's home
}

// PopulationConfig holds the starting population size.
type PopulationConfig struct {
	Initial int `yaml:"initial"` // Number of templates spawned at start (3, 4 or 5)
}

// AgentTemplate describes one founding villager.
type AgentTemplate struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Emoji       string  `yaml:"emoji"`
	Color       string  `yaml:"color"`
	Personality string  `yaml:"personality"`
	Home        string  `yaml:"home"`
	Speed       float64 `yaml:"speed"`
}

// RectConfig is an axis-aligned rectangle in world units.
type RectConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// FurnitureConfig is a presentation-only prop inside a building.
type FurnitureConfig struct {
	Kind string     `yaml:"kind"`
	Rect RectConfig `yaml:"rect"`
}

// BuildingConfig overrides the built-in building catalog when present.
type BuildingConfig struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	Kind      string            `yaml:"kind"` // home | public
	Rect      RectConfig        `yaml:"rect"`
	Wings     []RectConfig      `yaml:"wings"`
	Furniture []FurnitureConfig `yaml:"furniture"`
}

// MovementConfig holds walking parameters.
type MovementConfig struct {
	ArrivalThreshold float64 `yaml:"arrival_threshold"`
}

// EncounterConfig holds proximity parameters.
type EncounterConfig struct {
	InteractionDistance float64 `yaml:"interaction_distance"`
	FaceOffset          float64 `yaml:"face_offset"` // Distance of each agent from the pair midpoint while talking
}

// RelationshipConfig holds minimum meet counts for each stage edge.
type RelationshipConfig struct {
	Acquaintance int `yaml:"acquaintance"`
	Friend       int `yaml:"friend"`
	Lover        int `yaml:"lover"`
	Married      int `yaml:"married"`
	Parent       int `yaml:"parent"`
	MaxTopics    int `yaml:"max_topics"`
}

// DialogueConfig holds conversation pacing.
type DialogueConfig struct {
	Stagger      float64 `yaml:"stagger"`       // Seconds between dialogue lines
	BubbleLinger float64 `yaml:"bubble_linger"` // Seconds a speech bubble stays up
	TopicMaxLen  int     `yaml:"topic_max_len"` // Topic is truncated to this many runes
	MaxLines     int     `yaml:"max_lines"`     // Longest conversation the engine will schedule
}

// ReactionsConfig holds object-reaction parameters.
type ReactionsConfig struct {
	Distance     float64 `yaml:"distance"`      // Agents closer than this to an object react to it
	Cooldown     float64 `yaml:"cooldown"`      // Seconds before an agent may react to the same object again
	BubbleLinger float64 `yaml:"bubble_linger"` // Seconds a reaction bubble stays up
}

// DecreeConfig holds god-decree pacing.
type DecreeConfig struct {
	Stagger      float64 `yaml:"stagger"`
	BubbleLinger float64 `yaml:"bubble_linger"`
}

// BabyConfig holds birth parameters.
type BabyConfig struct {
	BirthDelay float64  `yaml:"birth_delay"` // Seconds after the parent announcement
	SpeedMin   float64  `yaml:"speed_min"`
	SpeedMax   float64  `yaml:"speed_max"`
	BoyNames   []string `yaml:"boy_names"`
	GirlNames  []string `yaml:"girl_names"`
	BoyEmoji   string   `yaml:"boy_emoji"`
	GirlEmoji  string   `yaml:"girl_emoji"`
	Colors     []string `yaml:"colors"`
}

// BubblesConfig holds celebration bubble parameters.
type BubblesConfig struct {
	CelebrationLinger float64 `yaml:"celebration_linger"`
}

// GatewayConfig selects and tunes the conversation collaborator.
type GatewayConfig struct {
	Provider    string  `yaml:"provider"` // scripted | openai | ollama | anthropic | googleai
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"` // Environment variable holding the API key
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	Timeout     float64 `yaml:"timeout"`    // Seconds per request
	RatePerSec  float64 `yaml:"rate_per_sec"`
	Burst       int     `yaml:"burst"`
	MaxInFlight int     `yaml:"max_in_flight"` // New encounters and reactions wait while this many requests are out (0 = no cap)
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds of simulated time per stats window
}

// ObserverConfig holds websocket observer parameters.
type ObserverConfig struct {
	EveryTicks int `yaml:"every_ticks"` // Publish one frame every N ticks
	SendBuffer int `yaml:"send_buffer"` // Frames buffered per client before it is dropped
}

// ChronicleConfig holds narrative log parameters.
type ChronicleConfig struct {
	Size int `yaml:"size"`
}

// ObjectPreset is a spawnable prop offered by the UI.
type ObjectPreset struct {
	Name  string `yaml:"name"`
	Emoji string `yaml:"emoji"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TickDuration      time.Duration // 1 / Screen.TargetFPS
	DialogueStagger   time.Duration
	SpeechLinger      time.Duration
	ReactionCooldown  time.Duration
	ReactionLinger    time.Duration
	DecreeStagger     time.Duration
	DecreeLinger      time.Duration
	CelebrationLinger time.Duration
	BirthDelay        time.Duration
	GatewayTimeout    time.Duration
	LockTTL           time.Duration // Longest a conversation lock may legitimately be held
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate reports configuration values the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.World.Width <= 2*c.World.EdgeMargin || c.World.Height <= 2*c.World.EdgeMargin {
		errs = append(errs, fmt.Errorf("world %vx%v is smaller than twice the edge margin %v",
			c.World.Width, c.World.Height, c.World.EdgeMargin))
	}
	if c.Population.Initial < 0 || c.Population.Initial > len(c.Agents) {
		errs = append(errs, fmt.Errorf("population.initial=%d but only %d agent templates",
			c.Population.Initial, len(c.Agents)))
	}
	seen := make(map[string]bool, len(c.Agents))
	for _, a := range c.Agents {
		if a.ID == "" {
			errs = append(errs, errors.New("agent template without id"))
			continue
		}
		if seen[a.ID] {
			errs = append(errs, fmt.Errorf("duplicate agent template id %q", a.ID))
		}
		seen[a.ID] = true
	}
	r := c.Relationship
	if !(r.Acquaintance <= r.Friend && r.Friend <= r.Lover && r.Lover <= r.Married && r.Married <= r.Parent) {
		errs = append(errs, errors.New("relationship thresholds must be non-decreasing"))
	}
	if c.Baby.SpeedMin > c.Baby.SpeedMax {
		errs = append(errs, fmt.Errorf("baby.speed_min %v > baby.speed_max %v", c.Baby.SpeedMin, c.Baby.SpeedMax))
	}
	if len(c.Baby.BoyNames) == 0 || len(c.Baby.GirlNames) == 0 || len(c.Baby.Colors) == 0 {
		errs = append(errs, errors.New("baby name pools and colors must not be empty"))
	}
	if c.Gateway.RatePerSec <= 0 || c.Gateway.Burst <= 0 {
		errs = append(errs, errors.New("gateway.rate_per_sec and gateway.burst must be positive"))
	}
	if c.Gateway.MaxInFlight < 0 {
		errs = append(errs, fmt.Errorf("gateway.max_in_flight %d is negative", c.Gateway.MaxInFlight))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.TickDuration = time.Second / time.Duration(fps)
	c.Derived.DialogueStagger = seconds(c.Dialogue.Stagger)
	c.Derived.SpeechLinger = seconds(c.Dialogue.BubbleLinger)
	c.Derived.ReactionCooldown = seconds(c.Reactions.Cooldown)
	c.Derived.ReactionLinger = seconds(c.Reactions.BubbleLinger)
	c.Derived.DecreeStagger = seconds(c.Decree.Stagger)
	c.Derived.DecreeLinger = seconds(c.Decree.BubbleLinger)
	c.Derived.CelebrationLinger = seconds(c.Bubbles.CelebrationLinger)
	c.Derived.BirthDelay = seconds(c.Baby.BirthDelay)
	c.Derived.GatewayTimeout = seconds(c.Gateway.Timeout)

	// A conversation lock covers the request plus the longest dialogue and the birth that may follow it
	c.Derived.LockTTL = c.Derived.GatewayTimeout +
		time.Duration(c.Dialogue.MaxLines+1)*c.Derived.DialogueStagger +
		c.Derived.BirthDelay
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
