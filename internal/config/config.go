package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel          string   `yaml:"log-level" env-default:"info"`
	HTTPPort          string   `yaml:"http-port" env-default:"9090"`
	Redis             Redis    `yaml:"redis"`
	SQLiteStoragePath string   `yaml:"sqlite-storage-path" env-default:"./frames.db"`
	JWTSecretKey      string   `yaml:"jwt-secret-key"`
	Identity          Identity `yaml:"identity"`
	Frame             Frame    `yaml:"frame"`
	Bot               Bot      `yaml:"bot"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

type Identity struct {
	BaseURL string `yaml:"base-url" env-default:""`
}

type Frame struct {
	ImageBaseURL string `yaml:"image-base-url" env-default:""`
	PostURL      string `yaml:"post-url" env-default:""`
}

type Bot struct {
	MistakeRate float64 `yaml:"mistake-rate" env-default:"0.2"`
	CenterRate  float64 `yaml:"center-rate" env-default:"0.7"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
