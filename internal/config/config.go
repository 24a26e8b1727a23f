package config

import (
	"os"

	"github.com/go-yaml/yaml"

	"github.com/scirota/selection-api/internal/domain"
)

type Config struct {
	Server    Server                `yaml:"server"`
	Auth      Auth                  `yaml:"auth"`
	Selection Selection             `yaml:"selection"`
	Scoring   domain.ScoringWeights `yaml:"scoring"`
}

type Server struct {
	ListenAddr    string `yaml:"listenAddr"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

type Auth struct {
	Secret       string `yaml:"secret"`
	TokenTTLMins int    `yaml:"tokenTTLMins"`
}

type Selection struct {
	MaxDirections int `yaml:"maxDirections"`
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	if config.Server.ListenAddr == "" {
		config.Server.ListenAddr = ":8000"
	}
	if config.Auth.TokenTTLMins <= 0 {
		config.Auth.TokenTTLMins = 12 * 60
	}
	if config.Selection.MaxDirections <= 0 {
		config.Selection.MaxDirections = domain.DefaultMaxDirections
	}
	if config.Scoring.AvgEducationScore == 0 && len(config.Scoring.Merit) == 0 {
		config.Scoring = domain.DefaultScoringWeights()
	}

	return config, nil
}
