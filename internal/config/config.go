package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Momo struct {
		BaseURL           string `yaml:"base_url"`
		TargetEnvironment string `yaml:"target_environment"`
		CallbackURL       string `yaml:"callback_url"`
		Currency          string `yaml:"currency"`
	} `yaml:"momo"`
	SMS struct {
		Endpoint string `yaml:"endpoint"`
	} `yaml:"sms"`
	Firebase struct {
		CredentialsFile string `yaml:"credentials_file"`
	} `yaml:"firebase"`
}

// LoadConfig reads the yaml config named by CONFIG_PATH, falling back to
// ./config/config.yaml. Secrets (DB password, API keys) come from the
// environment, not the file.
func LoadConfig() Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read config file %s: %v", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("Failed to unmarshal config data: %v", err)
	}
	return cfg
}
