package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	devConfigPath = "config/dev"
	defaultName   = "config"

	defaultMaxUploadBytes = int64(1) << 30 // 1 GiB
)

type Config struct {
	Server   ServerConfig      `mapstructure:"server"`
	Log      LogConfig         `mapstructure:"log"`
	Store    StoreConfig       `mapstructure:"store"`
	Upload   UploadConfig      `mapstructure:"upload"`
	Identity IdentityConfig    `mapstructure:"identity"`
	Auth     AuthManagerConfig `mapstructure:"auth_manager"`
}

type ServerConfig struct {
	Host string `mapstructure:"host" validate:"required"`
	Port string `mapstructure:"port" validate:"required"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// StoreConfig describes the local record store: a data directory holding one
// JSON document per namespaced key. QuotaBytes of zero disables the quota.
type StoreConfig struct {
	Path       string `mapstructure:"path" validate:"required"`
	QuotaBytes int64  `mapstructure:"quota_bytes" validate:"gte=0"`
}

type UploadConfig struct {
	MaxFileSizeBytes int64 `mapstructure:"max_file_size_bytes" validate:"required,gt=0"`
}

// IdentityConfig points at the external identity provider service.
type IdentityConfig struct {
	Address string `mapstructure:"address" validate:"required,url"`
	Token   string `mapstructure:"token"`
}

type AuthManagerConfig struct {
	SessionTokenTTL  time.Duration `mapstructure:"session_token_ttl" validate:"required,gt=0"`
	Algorithm        string        `mapstructure:"signing_algorithm" validate:"required,oneof=HS256 HS384 HS512 RS256 RS384 RS512 ES256 ES384 ES512 EdDSA"`
	SecretPrivateKey string        `mapstructure:"secret_private_key"`
	PublicKey        string        `mapstructure:"public_key"`
}

func NewConfig() (Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = devConfigPath
	}
	name := os.Getenv("CONFIG_NAME")
	if name == "" {
		name = defaultName
	}

	v := viper.New()
	v.AddConfigPath(configPath)
	v.SetConfigName(name)
	v.SetConfigType("yaml")

	v.SetDefault("upload.max_file_size_bytes", defaultMaxUploadBytes)
	v.SetDefault("store.quota_bytes", 0)

	v.AutomaticEnv()
	v.SetEnvPrefix("")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var config Config
	if err := v.ReadInConfig(); err != nil {
		return config, err
	}
	if err := v.Unmarshal(&config); err != nil {
		return config, err
	}

	return config, validator.New().Struct(config)
}
