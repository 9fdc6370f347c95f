// Package config loads the application settings: branding strings printed on
// exported documents, the default currency of new estimates and where the CLI
// writes its files.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"estimatebuilder/services"
)

// EnvPrefix is prepended to every environment override, e.g. ESTIMATE_TITLE.
const EnvPrefix = "ESTIMATE"

// Settings is the resolved configuration.
type Settings struct {
	Title           string `mapstructure:"title"`
	Subtitle        string `mapstructure:"subtitle"`
	ThankYou        string `mapstructure:"thank_you"`
	Attribution     string `mapstructure:"attribution"`
	DefaultCurrency string `mapstructure:"default_currency"`
	ExportDir       string `mapstructure:"export_dir"`
	MailFrom        string `mapstructure:"mail_from"`
}

func setDefaults(v *viper.Viper) {
	b := services.DefaultBranding()
	v.SetDefault("title", b.Title)
	v.SetDefault("subtitle", b.Subtitle)
	v.SetDefault("thank_you", b.ThankYou)
	v.SetDefault("attribution", b.Attribution)
	v.SetDefault("default_currency", string(services.DefaultCurrency))
	v.SetDefault("export_dir", "exports")
	v.SetDefault("mail_from", "")
}

// Load reads settings from path, or from an optional estimate.yaml in the
// working directory when path is empty, then applies ESTIMATE_* environment
// overrides on top.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("estimate")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if _, err := services.ParseCurrency(s.DefaultCurrency); err != nil {
		return nil, fmt.Errorf("default_currency: %w", err)
	}
	return &s, nil
}

// Default returns the built-in settings without consulting files or the
// environment.
func Default() *Settings {
	v := viper.New()
	setDefaults(v)
	var s Settings
	_ = v.Unmarshal(&s)
	return &s
}

// Branding returns the document strings for the renderers.
func (s *Settings) Branding() services.Branding {
	return services.Branding{
		Title:       s.Title,
		Subtitle:    s.Subtitle,
		ThankYou:    s.ThankYou,
		Attribution: s.Attribution,
	}
}

// Currency returns the configured default currency, falling back to the
// built-in default if it does not parse.
func (s *Settings) Currency() services.Currency {
	c, err := services.ParseCurrency(s.DefaultCurrency)
	if err != nil {
		return services.DefaultCurrency
	}
	return c
}
