package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// BotConfig содержит конфигурацию Telegram-бота.
type BotConfig struct {
	Token string `yaml:"token"`
	// StateFile — путь к JSON-файлу с состоянием всех чатов.
	StateFile string `yaml:"state_file"`
	// ExportThreshold — число занятых мест, начиная с которого /export
	// отправляет Excel-файл вместо текстовой таблицы.
	ExportThreshold int `yaml:"export_threshold"`
	// DefaultTime и DefaultVenue — метаданные впервые упомянутого чата.
	DefaultTime  string `yaml:"default_time"`
	DefaultVenue string `yaml:"default_venue"`
}

// ServerConfig содержит конфигурацию HTTP-сервера статуса.
type ServerConfig struct {
	Host                   string `yaml:"host"`
	Port                   int    `yaml:"port"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
}

// LoggingConfig содержит конфигурацию логирования.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// Config является корневой структурой YAML-файла конфигурации.
type Config struct {
	Bot     BotConfig     `yaml:"bot"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// Load загружает конфигурацию из указанного файла. Переменная окружения
// BOT_TOKEN (в том числе из .env) имеет приоритет над значением из файла,
// чтобы токен не приходилось хранить в конфигурации.
func Load(filename string) (*Config, error) {
	// .env может отсутствовать, тогда полагаемся на окружение и YAML.
	_ = godotenv.Load()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if token := os.Getenv("BOT_TOKEN"); token != "" {
		cfg.Bot.Token = token
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults устанавливает значения по умолчанию для незаполненных полей.
func applyDefaults(cfg *Config) {
	if cfg.Bot.StateFile == "" {
		cfg.Bot.StateFile = DefaultStateFile
	}
	if cfg.Bot.ExportThreshold == 0 {
		cfg.Bot.ExportThreshold = DefaultExportThreshold
	}
	if cfg.Bot.DefaultTime == "" {
		cfg.Bot.DefaultTime = DefaultMatchTime
	}
	if cfg.Bot.DefaultVenue == "" {
		cfg.Bot.DefaultVenue = DefaultVenue
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.ShutdownTimeoutSeconds == 0 {
		cfg.Server.ShutdownTimeoutSeconds = DefaultShutdownTimeoutSecs
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// Address возвращает адрес HTTP-сервера в формате "host:port".
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate проверяет корректность конфигурации.
func (c *Config) Validate() error {
	if c.Bot.Token == "" || c.Bot.Token == "YOUR_TELEGRAM_BOT_TOKEN" {
		return fmt.Errorf("bot.token is not configured")
	}
	if c.Bot.StateFile == "" {
		return fmt.Errorf("bot.state_file cannot be empty")
	}
	if c.Bot.ExportThreshold <= 0 {
		return fmt.Errorf("bot.export_threshold must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid port number (1-65535)")
	}
	if c.Server.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("server.shutdown_timeout_seconds must be positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be one of: json, text")
	}
	return nil
}
