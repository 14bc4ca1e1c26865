package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	DBPath      string           `json:"db_path"`
	JWTSecret   string           `json:"jwt_secret"`
	Port        int              `json:"port"`
	JWTTTLHours int              `json:"jwt_ttl_hours"`
	LogConfig   logger.LogConfig `json:"log_config"`
	FileStore   FileStoreConfig  `json:"file_store"`
	AI          AIConfig         `json:"ai"`
	Interview   InterviewConfig  `json:"interview"`
}

type FileStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type AIConfig struct {
	Provider      string      `json:"provider"`
	ChatModel     string      `json:"chat_model"`
	EmbedModel    string      `json:"embed_model"`
	Temperature   float32     `json:"temperature"`
	Timeout       int         `json:"timeout"`
	MaxInputChars int         `json:"max_input_chars"`
	Data          interface{} `json:"data"`
}

type InterviewConfig struct {
	ChunkSize         int    `json:"chunk_size"`
	ChunkOverlap      int    `json:"chunk_overlap"`
	TopK              int    `json:"top_k"`
	MaxSessions       int    `json:"max_sessions"`
	SessionTTLMinutes int    `json:"session_ttl_minutes"`
	SweepCron         string `json:"sweep_cron"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db_path is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.FileStore.Type == "" {
		return nil, fmt.Errorf("file_store.type is required")
	}
	if cfg.AI.Provider == "" {
		return nil, fmt.Errorf("ai.provider is required")
	}
	if cfg.AI.ChatModel == "" {
		cfg.AI.ChatModel = "gemini-2.0-flash"
	}
	if cfg.AI.EmbedModel == "" {
		cfg.AI.EmbedModel = "text-embedding-004"
	}
	if cfg.AI.Temperature == 0 {
		cfg.AI.Temperature = 0.5
	}
	if cfg.AI.Timeout == 0 {
		cfg.AI.Timeout = 60
	}
	if cfg.Interview.ChunkSize == 0 {
		cfg.Interview.ChunkSize = 1000
	}
	if cfg.Interview.ChunkOverlap == 0 {
		cfg.Interview.ChunkOverlap = 200
	}
	if cfg.Interview.ChunkOverlap >= cfg.Interview.ChunkSize {
		return nil, fmt.Errorf("interview.chunk_overlap must be smaller than interview.chunk_size")
	}
	if cfg.Interview.TopK == 0 {
		cfg.Interview.TopK = 1
	}
	if cfg.Interview.MaxSessions == 0 {
		cfg.Interview.MaxSessions = 256
	}
	if cfg.Interview.SessionTTLMinutes == 0 {
		cfg.Interview.SessionTTLMinutes = 60
	}
	if cfg.Interview.SweepCron == "" {
		cfg.Interview.SweepCron = "*/10 * * * *"
	}
	return &cfg, nil
}
