package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode       string `mapstructure:"mode"`
	Port       int    `mapstructure:"port"`
	StaticPath string `mapstructure:"static_path"`
	Secret     string `mapstructure:"secret"`
	LogLevel   string `mapstructure:"log_level"`

	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	PongWait   time.Duration `mapstructure:"pong_wait"`
	WriteWait  time.Duration `mapstructure:"write_wait"`
	SendBuffer int           `mapstructure:"send_buffer"`

	ConnectLimit    int           `mapstructure:"connect_limit"`
	ConnectInterval time.Duration `mapstructure:"connect_interval"`

	Audio         AudioConfig         `mapstructure:"audio"`
	Transcription TranscriptionConfig `mapstructure:"transcription"`
	Sentiment     SentimentConfig     `mapstructure:"sentiment"`
	Questions     QuestionsConfig     `mapstructure:"questions"`
	ICEServers    []ICEServer         `mapstructure:"ice_servers"`
}

type AudioConfig struct {
	SampleRate    int `mapstructure:"sample_rate"`
	WindowSeconds int `mapstructure:"window_seconds"`
}

type TranscriptionConfig struct {
	Backend  string        `mapstructure:"backend"`
	Endpoint string        `mapstructure:"endpoint"`
	Language string        `mapstructure:"language"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type SentimentConfig struct {
	Backend   string        `mapstructure:"backend"`
	Endpoint  string        `mapstructure:"endpoint"`
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	Threshold float64       `mapstructure:"threshold"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type QuestionsConfig struct {
	RulesPath string `mapstructure:"rules_path"`
}

type ICEServer struct {
	URLs       []string `mapstructure:"urls"`
	Username   string   `mapstructure:"username"`
	Credential string   `mapstructure:"credential"`
}

// Load reads config/config.<CONFIG_ENV>.yaml (env defaults to "dev").
// Any key can be overridden with a CONSULT_ variable, e.g. CONSULT_SENTIMENT_API_KEY.
func Load() (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return LoadFile(fmt.Sprintf("config/config.%s.yaml", env))
}

func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)

	v.SetEnvPrefix("CONSULT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Str("static", cfg.StaticPath).Msg("config ready")
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("static_path", "./web")
	v.SetDefault("secret", "change-me")
	v.SetDefault("log_level", "info")

	v.SetDefault("read_limit", 1<<20)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("pong_wait", "60s")
	v.SetDefault("write_wait", "10s")
	v.SetDefault("send_buffer", 32)

	v.SetDefault("connect_limit", 20)
	v.SetDefault("connect_interval", "1m")

	v.SetDefault("audio.sample_rate", 16000)
	v.SetDefault("audio.window_seconds", 2)

	v.SetDefault("transcription.backend", "none")
	v.SetDefault("transcription.endpoint", "")
	v.SetDefault("transcription.language", "en")
	v.SetDefault("transcription.timeout", "0s")

	v.SetDefault("sentiment.backend", "none")
	v.SetDefault("sentiment.endpoint", "")
	v.SetDefault("sentiment.api_key", "")
	v.SetDefault("sentiment.model", "gemini-2.0-flash")
	v.SetDefault("sentiment.threshold", 0.85)
	v.SetDefault("sentiment.timeout", "0s")

	v.SetDefault("questions.rules_path", "")
}

func (c *Config) validate() error {
	var errs []error
	if c.Audio.SampleRate <= 0 || c.Audio.WindowSeconds <= 0 {
		errs = append(errs, fmt.Errorf("audio window must be positive, got %d Hz x %ds", c.Audio.SampleRate, c.Audio.WindowSeconds))
	}
	if c.PingPeriod >= c.PongWait {
		errs = append(errs, fmt.Errorf("ping_period (%s) must be shorter than pong_wait (%s)", c.PingPeriod, c.PongWait))
	}
	if c.Sentiment.Threshold < 0 || c.Sentiment.Threshold >= 1 {
		errs = append(errs, fmt.Errorf("sentiment.threshold must be in [0, 1), got %v", c.Sentiment.Threshold))
	}
	if c.SendBuffer <= 0 {
		errs = append(errs, fmt.Errorf("send_buffer must be positive, got %d", c.SendBuffer))
	}
	return errors.Join(errs...)
}
