package config

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultPort     = 8080
	DefaultHost     = "127.0.0.1"
	DefaultLogLevel = "info"

	// DefaultMaxAttachmentSize caps uploaded files at 5 MiB.
	DefaultMaxAttachmentSize = 5 * 1024 * 1024

	DefaultFromAddress = "olivemfb.ng@gmail.com"
	DefaultFromName    = "Olive Payment Solutions"
)

// defaultAgentRecipients and defaultMerchantRecipients are the distribution
// lists submissions go to unless overridden by flag or environment.
var (
	defaultAgentRecipients = []string{
		"popetimehin@olivepayment.com",
		"samuel.francis@olivemfb.com",
		"it@olivemfb.com",
		"eutuama@olivepayment.com",
		"ofavour@olivepayment.com",
		"oobinna@olivepayment.com",
		"eani@olivepayment.com",
		"vike@olivepayment.com",
	}
	defaultMerchantRecipients = []string{
		"popetimehin@olivepayment.com",
		"it@olivemfb.com",
		"samuel.francis@olivemfb.com",
		"eutuama@olivepayment.com",
		"ofavour@olivepayment.com",
		"oobinna@olivepayment.com",
		"eani@olivepayment.com",
		"vike@olivepayment.com",
	}
)

// Config holds all configuration for the intake relay server
type Config struct {
	// Server configuration
	Host string
	Port int

	// Outbound email configuration
	SendGridAPIKey     string
	FromAddress        string
	FromName           string
	AgentRecipients    []string
	MerchantRecipients []string

	// Application configuration
	Version           string
	ServerName        string
	LogLevel          string
	MaxAttachmentSize int64 // Maximum uploaded file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Host:               DefaultHost,
		Port:               DefaultPort,
		FromAddress:        DefaultFromAddress,
		FromName:           DefaultFromName,
		AgentRecipients:    append([]string(nil), defaultAgentRecipients...),
		MerchantRecipients: append([]string(nil), defaultMerchantRecipients...),
		Version:            "1.0.0",
		ServerName:         "pos-intake",
		LogLevel:           DefaultLogLevel,
		MaxAttachmentSize:  DefaultMaxAttachmentSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("POS_INTAKE")
	viper.AutomaticEnv()

	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("from", cfg.FromAddress)
	viper.SetDefault("fromname", cfg.FromName)
	viper.SetDefault("agentrecipients", strings.Join(cfg.AgentRecipients, ","))
	viper.SetDefault("merchantrecipients", strings.Join(cfg.MerchantRecipients, ","))
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxattachmentsize", cfg.MaxAttachmentSize)

	// The provider credential is environment-only, never a flag:
	// POS_INTAKE_SENDGRID_API_KEY.
	viper.SetDefault("sendgrid_api_key", "")
	_ = viper.BindEnv("sendgrid_api_key")
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("host", cfg.Host, "Server host address")
	pflag.Int("port", cfg.Port, "Server port")
	pflag.String("from", cfg.FromAddress, "Sender address for outbound submission emails")
	pflag.String("fromname", cfg.FromName, "Sender display name")
	pflag.String("agentrecipients", strings.Join(cfg.AgentRecipients, ","), "Comma-separated recipients for agent applications")
	pflag.String("merchantrecipients", strings.Join(cfg.MerchantRecipients, ","), "Comma-separated recipients for merchant applications")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxattachmentsize", cfg.MaxAttachmentSize, "Maximum uploaded file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("from", pflag.Lookup("from"))
	_ = viper.BindPFlag("fromname", pflag.Lookup("fromname"))
	_ = viper.BindPFlag("agentrecipients", pflag.Lookup("agentrecipients"))
	_ = viper.BindPFlag("merchantrecipients", pflag.Lookup("merchantrecipients"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxattachmentsize", pflag.Lookup("maxattachmentsize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nPOS Intake - relay server for agent and merchant POS applications\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  POS_INTAKE_HOST                 Server host\n")
		fmt.Fprintf(os.Stderr, "  POS_INTAKE_PORT                 Server port\n")
		fmt.Fprintf(os.Stderr, "  POS_INTAKE_SENDGRID_API_KEY     Outbound email provider credential\n")
		fmt.Fprintf(os.Stderr, "  POS_INTAKE_FROM                 Sender address\n")
		fmt.Fprintf(os.Stderr, "  POS_INTAKE_AGENTRECIPIENTS      Agent distribution list (comma-separated)\n")
		fmt.Fprintf(os.Stderr, "  POS_INTAKE_MERCHANTRECIPIENTS   Merchant distribution list (comma-separated)\n")
		fmt.Fprintf(os.Stderr, "  POS_INTAKE_LOGLEVEL             Log level\n")
		fmt.Fprintf(os.Stderr, "  POS_INTAKE_MAXATTACHMENTSIZE    Maximum uploaded file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.SendGridAPIKey = viper.GetString("sendgrid_api_key")
	cfg.FromAddress = viper.GetString("from")
	cfg.FromName = viper.GetString("fromname")
	cfg.AgentRecipients = splitRecipients(viper.GetString("agentrecipients"))
	cfg.MerchantRecipients = splitRecipients(viper.GetString("merchantrecipients"))
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxAttachmentSize = viper.GetInt64("maxattachmentsize")
}

func splitRecipients(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Validate checks if the configuration is valid. The provider credential is
// deliberately not required here: the server boots without one and the relay
// endpoints answer with a configuration error until it is set.
func (c *Config) Validate() error {
	// Validate port range
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	if c.FromAddress == "" {
		return errors.New("sender address cannot be empty")
	}
	if _, err := mail.ParseAddress(c.FromAddress); err != nil {
		return fmt.Errorf("invalid sender address %q: %w", c.FromAddress, err)
	}

	if len(c.AgentRecipients) == 0 {
		return errors.New("agent recipient list cannot be empty")
	}
	if len(c.MerchantRecipients) == 0 {
		return errors.New("merchant recipient list cannot be empty")
	}
	for _, addr := range append(append([]string(nil), c.AgentRecipients...), c.MerchantRecipients...) {
		if _, err := mail.ParseAddress(addr); err != nil {
			return fmt.Errorf("invalid recipient address %q: %w", addr, err)
		}
	}

	// Validate max attachment size
	if c.MaxAttachmentSize <= 0 {
		return errors.New("maximum attachment size must be positive")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// HasMailCredential reports whether the outbound email provider credential
// is configured.
func (c *Config) HasMailCredential() bool {
	return c.SendGridAPIKey != ""
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration. The provider
// credential is redacted.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Host: %s, Port: %d, From: %s, AgentRecipients: %d, MerchantRecipients: %d, LogLevel: %s, MaxAttachmentSize: %d}",
		c.Host, c.Port, c.FromAddress, len(c.AgentRecipients), len(c.MerchantRecipients), c.LogLevel, c.MaxAttachmentSize)
}
