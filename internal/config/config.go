// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	ConfigFileName = "config.json"
	ConfigDirName  = "pixdrop"
	EnvPrefix      = "PIXDROP"
)

type AWSConfig struct {
	Region    string `mapstructure:"region" json:"region,omitempty"`
	Endpoint  string `mapstructure:"endpoint" json:"endpoint,omitempty" validate:"omitempty,url"`
	AccessKey string `mapstructure:"access_key" json:"access_key,omitempty"`
	SecretKey string `mapstructure:"secret_key" json:"secret_key,omitempty"`
}

type GCPConfig struct {
	Project string `mapstructure:"project" json:"project,omitempty"`
}

type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint" json:"endpoint,omitempty"`
	AccessKey string `mapstructure:"access_key" json:"access_key,omitempty"`
	SecretKey string `mapstructure:"secret_key" json:"secret_key,omitempty"`
	UseSSL    bool   `mapstructure:"use_ssl" json:"use_ssl,omitempty"`
}

type LocalConfig struct {
	Root string `mapstructure:"root" json:"root,omitempty"`
}

// GalleryConfig tunes the uploader and gallery behaviour
type GalleryConfig struct {
	PageSize            int           `mapstructure:"page_size" json:"page_size" validate:"min=1,max=1000"`
	CacheControlSeconds int           `mapstructure:"cache_control_seconds" json:"cache_control_seconds" validate:"min=0"`
	ResetDelay          time.Duration `mapstructure:"reset_delay" json:"reset_delay" validate:"min=0"`
	ToastDuration       time.Duration `mapstructure:"toast_duration" json:"toast_duration" validate:"min=0"`
}

type Config struct {
	Provider      string        `mapstructure:"provider" json:"provider,omitempty" validate:"omitempty,oneof=aws gcp minio local"`
	Bucket        string        `mapstructure:"bucket" json:"bucket,omitempty"`
	PublicBaseURL string        `mapstructure:"public_base_url" json:"public_base_url,omitempty" validate:"omitempty,url"`
	AWS           *AWSConfig    `mapstructure:"aws" json:"aws,omitempty"`
	GCP           *GCPConfig    `mapstructure:"gcp" json:"gcp,omitempty"`
	MinIO         *MinIOConfig  `mapstructure:"minio" json:"minio,omitempty"`
	Local         *LocalConfig  `mapstructure:"local" json:"local,omitempty"`
	Gallery       GalleryConfig `mapstructure:"gallery" json:"gallery"`
}

// Keys accepted by 'pixdrop config set'
var knownKeys = map[string]struct{}{
	"provider":                      {},
	"bucket":                        {},
	"public_base_url":               {},
	"aws.region":                    {},
	"aws.endpoint":                  {},
	"aws.access_key":                {},
	"aws.secret_key":                {},
	"gcp.project":                   {},
	"minio.endpoint":                {},
	"minio.access_key":              {},
	"minio.secret_key":              {},
	"minio.use_ssl":                 {},
	"local.root":                    {},
	"gallery.page_size":             {},
	"gallery.cache_control_seconds": {},
	"gallery.reset_delay":           {},
	"gallery.toast_duration":        {},
}

var defaults = map[string]interface{}{
	"gallery.page_size":             100,
	"gallery.cache_control_seconds": 3600,
	"gallery.reset_delay":           "2s",
	"gallery.toast_duration":        "3s",
}

// KnownKeys returns the sorted list of settable configuration keys
func KnownKeys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ConfigManager owns the persisted configuration file.
// The file viper only ever holds what the user set, so defaults and environment overrides are never written back
type ConfigManager struct {
	file     *viper.Viper
	path     string
	validate *validator.Validate
}

func NewConfigManager() (*ConfigManager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return NewConfigManagerAt(configPath)
}

// NewConfigManagerAt manages the configuration file at an explicit path
func NewConfigManagerAt(configPath string) (*ConfigManager, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")

	if info, err := os.Stat(configPath); err == nil && info.Size() > 0 {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return &ConfigManager{
		file:     v,
		path:     configPath,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

func (m *ConfigManager) Path() string {
	return m.path
}

// LoadConfig merges defaults, the config file and PIXDROP_* environment variables into a validated Config
func (m *ConfigManager) LoadConfig() (*Config, error) {
	return m.decode(m.file.AllSettings())
}

func (m *ConfigManager) decode(settings map[string]interface{}) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for k := range knownKeys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("error binding environment for %s: %w", k, err)
		}
	}

	if err := v.MergeConfigMap(settings); err != nil {
		return nil, fmt.Errorf("error merging config: %w", err)
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc())
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := m.Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks a Config against its struct constraints
func (m *ConfigManager) Validate(cfg *Config) error {
	if err := m.validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fe := validationErrors[0]
			return fmt.Errorf("invalid configuration: %s failed '%s' check (value: %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (m *ConfigManager) SetValue(key, value string) error {
	key = strings.ToLower(key)
	if _, ok := knownKeys[key]; !ok {
		return fmt.Errorf("unknown config key: %s. Known keys: %s", key, strings.Join(KnownKeys(), ", "))
	}

	// Reject values that would leave the file unloadable before touching it
	candidate := m.file.AllSettings()
	setNested(candidate, key, value)
	if _, err := m.decode(candidate); err != nil {
		return err
	}

	m.file.Set(key, value)
	return m.save()
}

func (m *ConfigManager) GetValue(key string) (interface{}, bool) {
	key = strings.ToLower(key)
	if !m.file.IsSet(key) {
		return nil, false
	}
	return m.file.Get(key), true
}

// DeleteValue removes a key from the file. viper cannot unset a key, so the file viper is rebuilt without it
func (m *ConfigManager) DeleteValue(key string) (bool, error) {
	key = strings.ToLower(key)
	value, exists := m.GetValue(key)
	if !exists || value == "" {
		return false, nil
	}

	settings := m.file.AllSettings()
	deleteNested(settings, key)

	v := viper.New()
	v.SetConfigFile(m.path)
	v.SetConfigType("json")
	if err := v.MergeConfigMap(settings); err != nil {
		return false, fmt.Errorf("error rebuilding config: %w", err)
	}
	m.file = v

	if err := m.save(); err != nil {
		return false, err
	}
	return true, nil
}

func (m *ConfigManager) GetAllSettings() map[string]interface{} {
	return m.file.AllSettings()
}

func (m *ConfigManager) save() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	if err := m.file.WriteConfigAs(m.path); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

func setNested(settings map[string]interface{}, key, value string) {
	parts := strings.Split(key, ".")
	current := settings
	for _, p := range parts[:len(parts)-1] {
		next, ok := current[p].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			current[p] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

func deleteNested(settings map[string]interface{}, key string) {
	parts := strings.Split(key, ".")
	current := settings
	for _, p := range parts[:len(parts)-1] {
		next, ok := current[p].(map[string]interface{})
		if !ok {
			return
		}
		current = next
	}
	delete(current, parts[len(parts)-1])
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting user home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", ConfigDirName)
	configPath := filepath.Join(configDir, ConfigFileName)

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	if _, err := os.Stat(ConfigFileName); err == nil {
		if err := migrateConfig(ConfigFileName, configPath); err == nil {
			return configPath, nil
		}
		return ConfigFileName, nil
	}

	return configPath, nil
}

func migrateConfig(sourcePath, destPath string) error {
	destDir := filepath.Dir(destPath)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("error reading source config file: %w", err)
	}

	if err := os.WriteFile(destPath, data, 0644); err != nil {
		return fmt.Errorf("error writing destination config file: %w", err)
	}

	return nil
}
