package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel          string        `yaml:"log-level" env-default:"info"`
	HTTPPort          string        `yaml:"http-port" env-default:"9090"`
	WSPort            string        `yaml:"ws-port" env-default:"9091"`
	Redis             Redis         `yaml:"redis"`
	Engine            Engine        `yaml:"engine"`
	SQLiteStoragePath string        `yaml:"sqlite-storage-path"`
	JWTSecretKey      string        `yaml:"jwt-secret-key"`
	TokenTTL          time.Duration `yaml:"token-ttl" env-default:"24h"`
	TurnTimeout       time.Duration `yaml:"turn-timeout" env-default:"0"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

// Engine bounds the automated opponent: maximum search depth and the wall
// clock budget of one move.
type Engine struct {
	Depth      int           `yaml:"depth" env-default:"6"`
	MoveBudget time.Duration `yaml:"move-budget" env-default:"2s"`
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
