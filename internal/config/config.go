package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Recommender struct {
		DefaultLimit       int     `yaml:"default_limit"`        // recommendations persisted per run
		NeighborLimit      int     `yaml:"neighbor_limit"`       // similar users considered
		MinSimilarity      float64 `yaml:"min_similarity"`       // neighbor cutoff
		PopularityMinApps  int     `yaml:"popularity_min_apps"`  // applicants needed for the boost
		SimilarityQueueLen int     `yaml:"similarity_queue_len"` // background worker buffer
	} `yaml:"recommender"`

	ML struct {
		ArtifactDir    string `yaml:"artifact_dir"`
		MinSamples     int    `yaml:"min_samples"`
		SyntheticCount int    `yaml:"synthetic_count"`
	} `yaml:"ml"`
}

var AppConfig *Config

// LoadConfig reads config.yaml, or environment variables when
// DATABASE_URL is set (test/deploy mode).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")
	serverEnv := os.Getenv("SERVER_ENV")
	portStr := os.Getenv("SERVER_PORT")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = serverEnv
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Recommender.DefaultLimit == 0 {
		cfg.Recommender.DefaultLimit = 20
	}
	if cfg.Recommender.NeighborLimit == 0 {
		cfg.Recommender.NeighborLimit = 10
	}
	if cfg.Recommender.MinSimilarity == 0 {
		cfg.Recommender.MinSimilarity = 0.1
	}
	if cfg.Recommender.PopularityMinApps == 0 {
		cfg.Recommender.PopularityMinApps = 5
	}
	if cfg.Recommender.SimilarityQueueLen == 0 {
		cfg.Recommender.SimilarityQueueLen = 256
	}
	if cfg.ML.ArtifactDir == "" {
		cfg.ML.ArtifactDir = "ml_models"
	}
	if cfg.ML.MinSamples == 0 {
		cfg.ML.MinSamples = 50
	}
	if cfg.ML.SyntheticCount == 0 {
		cfg.ML.SyntheticCount = 800
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
