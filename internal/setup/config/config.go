package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file in any config path")
	ErrConfigVersionMissing  = errors.New("config file is missing version field")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
)

// CurrentBotVersion is the expected version of the bot config file.
const CurrentBotVersion = 1

// Config represents the entire application configuration.
type Config struct {
	// Version of the config file.
	Version    int        `koanf:"version"`
	Debug      Debug      `koanf:"debug"`
	PostgreSQL PostgreSQL `koanf:"postgresql"`
	Discord    Discord    `koanf:"discord"`
	Guild      Guild      `koanf:"guild"`
	Automod    Automod    `koanf:"automod"`
	EventLog   EventLog   `koanf:"event_log"`
	Expiry     Expiry     `koanf:"expiry"`
}

// Debug contains debug-related configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
	// Maximum log sessions to keep.
	MaxLogsToKeep int `koanf:"max_logs_to_keep"`
}

// PostgreSQL contains database connection configuration.
type PostgreSQL struct {
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	User         string `koanf:"user"`
	Password     string `koanf:"password"`
	DBName       string `koanf:"db_name"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	// Connection lifetime limits in minutes.
	MaxLifetime int `koanf:"max_lifetime"`
	MaxIdleTime int `koanf:"max_idle_time"`
}

// Discord contains Discord bot configuration.
type Discord struct {
	// Discord bot token for authentication.
	Token string `koanf:"token"`
	// Prefix that marks a message as a moderator command.
	Prefix string `koanf:"prefix"`
}

// Guild contains identifiers for the guild the bot moderates.
type Guild struct {
	// Guild ID the bot operates in.
	ID uint64 `koanf:"id"`
	// Role applied to muted members.
	MutedRoleID uint64 `koanf:"muted_role_id"`
	// Extra roles locked down alongside the default role.
	LockdownExtraRoles []uint64 `koanf:"lockdown_extra_roles"`
}

// Automod contains automatic content moderation configuration.
type Automod struct {
	// Words that trigger the escalation engine. Matching is case-insensitive
	// and diacritic-insensitive substring containment.
	ForbiddenWords []string `koanf:"forbidden_words"`
	// Channel where automod notices are posted.
	NoticeChannelID uint64 `koanf:"notice_channel_id"`
}

// EventLog contains the lifecycle event log configuration.
type EventLog struct {
	// Footer template for log embeds; {id} is replaced with the user ID.
	Footer string `koanf:"footer"`
	// Named log channels referenced by event bindings.
	Channels map[string]uint64 `koanf:"channels"`
	// Per-event bindings keyed by event name (member_join, message_edit, ...).
	Events map[string]EventBinding `koanf:"events"`
}

// EventBinding describes how one lifecycle event is rendered.
type EventBinding struct {
	// Name of the channel in EventLog.Channels to post to.
	Channel string `koanf:"channel"`
	// Embed title template.
	Title string `koanf:"title"`
	// Embed description template with named placeholders ({ping}, {age}, ...).
	Description string `koanf:"description"`
	// Embed colour.
	Colour int `koanf:"colour"`
}

// Expiry contains the temporary action sweeper configuration.
type Expiry struct {
	// Sweep interval in seconds.
	Interval int `koanf:"interval"`
}

// LoadConfig loads the configuration from the first available search path.
// Returns the config along with the used config directory.
func LoadConfig() (*Config, string, error) {
	k := koanf.New(".")

	// Get user's home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// List search paths
	configPaths := []string{
		".sentinel",
		homeDir + "/.sentinel/config",
		"/etc/sentinel/config",
		"/app/config",
		"config",
		".",
	}

	var usedConfigPath string

	for _, path := range configPaths {
		configPath := fmt.Sprintf("%s/bot.toml", path)
		if err := k.Load(file.Provider(configPath), toml.Parser()); err == nil {
			usedConfigPath = path
			break
		}
	}

	if usedConfigPath == "" {
		return nil, "", fmt.Errorf("%w: bot.toml", ErrConfigFileNotFound)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := checkConfigVersion("bot", config.Version, CurrentBotVersion); err != nil {
		return nil, "", err
	}

	return &config, usedConfigPath, nil
}

// checkConfigVersion validates a config file's version field.
func checkConfigVersion(name string, version, expected int) error {
	if version == 0 {
		return fmt.Errorf("%w: %s.toml", ErrConfigVersionMissing, name)
	}

	if version != expected {
		return fmt.Errorf("%w: %s.toml has version %d, expected %d",
			ErrConfigVersionMismatch, name, version, expected)
	}

	return nil
}
