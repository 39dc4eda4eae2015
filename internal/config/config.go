package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Mode         string        `mapstructure:"mode" validate:"oneof=debug release"`
	Port         int           `mapstructure:"port" validate:"min=1,max=65535"`
	StaticPath   string        `mapstructure:"static_path" validate:"required"`
	ReadLimit    int64         `mapstructure:"read_limit" validate:"min=512"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"min=1s"`
	SendBuffer   int           `mapstructure:"send_buffer" validate:"min=1"`
	Secret       string        `mapstructure:"secret"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 3000)
	v.SetDefault("static_path", "./web")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("write_timeout", "5s")
	v.SetDefault("send_buffer", 32)

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("⚠️ Config file not found (%s), using defaults\n", fileName)
	} else {
		fmt.Printf("✅ Loaded config: %s\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
