package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jonathan/copydesk/internal/config"
	"github.com/jonathan/copydesk/internal/kvstore"
	"github.com/jonathan/copydesk/internal/llm"
	"github.com/jonathan/copydesk/internal/tui"
	"github.com/jonathan/copydesk/internal/voice"
)

// settings merges the optional config file over the environment.
type settings struct {
	config.Config
	env config.Env
}

func loadSettings() (*settings, error) {
	e, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}

	fromEnv := config.Config{Provider: e.LLMProvider, Model: e.LLMModel, DataDir: e.DataDir}
	cfg := config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		if err := loaded.Validate(); err != nil {
			return nil, err
		}
		cfg = *loaded
	}
	cfg = cfg.MergeWithDefaults(fromEnv)
	cfg.Verbose = cfg.Verbose || verbose

	e.LLMProvider = cfg.Provider
	e.LLMModel = cfg.Model
	e.DataDir = cfg.DataDir
	if cfg.APIKey == "" {
		cfg.APIKey = e.APIKey()
	}
	return &settings{Config: cfg, env: e}, nil
}

// openStore opens the local SQLite store under the data directory.
func (s *settings) openStore() (*kvstore.SQLite, error) {
	dir, err := s.env.ResolveDataDir()
	if err != nil {
		return nil, err
	}
	return kvstore.OpenSQLite(dir)
}

// newLLMClient returns nil when no API key is configured.
func (s *settings) newLLMClient(ctx context.Context) (llm.Client, error) {
	if s.APIKey == "" {
		return nil, nil
	}
	cfg, err := s.env.LLMConfig()
	if err != nil {
		return nil, err
	}
	client, err := llm.NewClient(ctx, cfg, s.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// analyzer talks to a copydesk server when one is configured and otherwise
// calls the model directly. The returned close func releases the LLM client.
func (s *settings) analyzer(ctx context.Context) (tui.Analyzer, func(), error) {
	if s.ServerURL != "" {
		if s.Verbose {
			log.Printf("[analyze-voice] Using server %s", s.ServerURL)
		}
		return voice.NewAnalyzer(s.ServerURL, &http.Client{Timeout: 2 * time.Minute}), func() {}, nil
	}

	client, err := s.newLLMClient(ctx)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return nil, nil, fmt.Errorf("API key is required (set GEMINI_API_KEY or OPENAI_API_KEY, or use --server)")
	}
	svc := voice.NewService(client)
	return tui.AnalyzerFunc(svc.AnalyzeSamples), func() { _ = client.Close() }, nil
}
