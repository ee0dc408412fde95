package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode   string `mapstructure:"mode"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	GoogleCloud struct {
		ProjectID       string `mapstructure:"projectID"`
		Location        string `mapstructure:"location"`
		CredentialsFile string `mapstructure:"credentialsFile"`
	} `mapstructure:"googleCloud"`
	AI struct {
		Models          []string `mapstructure:"models"`
		Temperature     float32  `mapstructure:"temperature"`
		TopP            float32  `mapstructure:"topP"`
		TopK            float32  `mapstructure:"topK"`
		MaxOutputTokens int32    `mapstructure:"maxOutputTokens"`
		BudgetMargin    float64  `mapstructure:"budgetMargin"`
	} `mapstructure:"ai"`
	Maps struct {
		APIKey         string `mapstructure:"apiKey"`
		NearbyRadiusM  uint   `mapstructure:"nearbyRadiusM"`
		MaxAttractions int    `mapstructure:"maxAttractions"`
	} `mapstructure:"maps"`
	YouTube struct {
		APIKey     string        `mapstructure:"apiKey"`
		MaxResults int64         `mapstructure:"maxResults"`
		CacheTTL   time.Duration `mapstructure:"cacheTTL"`
	} `mapstructure:"youtube"`
	BigQuery struct {
		Dataset         string `mapstructure:"dataset"`
		InfluencerTable string `mapstructure:"influencerTable"`
		FeedbackTable   string `mapstructure:"feedbackTable"`
	} `mapstructure:"bigquery"`
	Repositories struct {
		Postgres struct {
			Host     string `mapstructure:"host"`
			Password string `mapstructure:"password"`
			Port     string `mapstructure:"port"`
			Username string `mapstructure:"username"`
			DB       string `mapstructure:"db"`
			SSLMode  string `mapstructure:"sslmode"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Try to load file-based config, falling back to the embedded copy.
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}

	// Secrets always come from the environment, never the yml.
	if p := os.Getenv("GOOGLE_CLOUD_PROJECT"); p != "" {
		config.GoogleCloud.ProjectID = p
	}
	if l := os.Getenv("VERTEXAI_LOCATION"); l != "" {
		config.GoogleCloud.Location = l
	}
	if c := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); c != "" {
		config.GoogleCloud.CredentialsFile = c
	}
	if k := os.Getenv("GOOGLE_MAPS_API_KEY"); k != "" {
		config.Maps.APIKey = k
	}
	if k := os.Getenv("YOUTUBE_API_KEY"); k != "" {
		config.YouTube.APIKey = k
	}
	if pw := os.Getenv("POSTGRES_PASSWORD"); pw != "" {
		config.Repositories.Postgres.Password = pw
	}

	if config.GoogleCloud.ProjectID == "" {
		return Config{}, fmt.Errorf("GOOGLE_CLOUD_PROJECT is not set")
	}

	return config, nil
}
