// Package config gathers every external credential and endpoint into one
// explicit struct. Nothing else in the module reads the process environment.
package config

import (
	"os"
	"strconv"
)

type MongoConfig struct {
	URI      string
	Database string
}

type ModelConfig struct {
	Provider   string // openai | claude | gemini | ollama | dummy
	Name       string
	APIKey     string
	BaseURL    string // Azure endpoint for openai, host for ollama
	Deployment string // Azure deployment name
}

type VectaraConfig struct {
	CustomerID int64
	CorpusID   int64
	APIKey     string
}

type AWSConfig struct {
	Region           string
	Bucket           string
	AudioFolder      string
	Voice            string
	CallbackEndpoint string
}

type Config struct {
	Mongo   MongoConfig
	Model   ModelConfig
	Vectara VectaraConfig
	AWS     AWSConfig
}

// FromEnv enumerates the environment once. Callers (the demo binary) load any
// .env file beforehand.
func FromEnv() Config {
	return Config{
		Mongo: MongoConfig{
			URI:      os.Getenv("MONGO_URI"),
			Database: os.Getenv("MONGO_DATABASE"),
		},
		Model: ModelConfig{
			Provider:   envOr("MODEL_PROVIDER", "openai"),
			Name:       os.Getenv("MODEL_NAME"),
			APIKey:     os.Getenv("MODEL_API_KEY"),
			BaseURL:    os.Getenv("MODEL_BASE_URL"),
			Deployment: os.Getenv("MODEL_DEPLOYMENT"),
		},
		Vectara: VectaraConfig{
			CustomerID: envInt64("VECTARA_CUSTOMER_ID"),
			CorpusID:   envInt64("VECTARA_CORPUS_ID"),
			APIKey:     os.Getenv("VECTARA_API_KEY"),
		},
		AWS: AWSConfig{
			Region:           os.Getenv("AWS_REGION"),
			Bucket:           envOr("AUDIO_BUCKET", "boostfs"),
			AudioFolder:      envOr("AUDIO_FOLDER", "temp"),
			Voice:            envOr("SPEECH_VOICE", "Joey"),
			CallbackEndpoint: os.Getenv("CALLBACK_ENDPOINT"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string) int64 {
	v, _ := strconv.ParseInt(os.Getenv(key), 10, 64)
	return v
}
