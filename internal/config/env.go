package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/jonathan/copydesk/internal/billing"
	"github.com/jonathan/copydesk/internal/llm"
	"github.com/jonathan/copydesk/internal/types"
)

// Env is the process configuration read from the environment (and .env).
type Env struct {
	Port           int      `env:"PORT"            envDefault:"8080"`
	AppURL         string   `env:"APP_URL"         envDefault:"http://localhost:8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	DataDir        string   `env:"COPYDESK_DATA_DIR"`

	LLMProvider  string `env:"LLM_PROVIDER"   envDefault:"gemini"`
	LLMModel     string `env:"LLM_MODEL"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`

	StripeSecretKey         string `env:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret     string `env:"STRIPE_WEBHOOK_SECRET"`
	StripePriceStarter      string `env:"STRIPE_PRICE_STARTER"`
	StripePriceProfessional string `env:"STRIPE_PRICE_PROFESSIONAL"`
	StripePriceEnterprise   string `env:"STRIPE_PRICE_ENTERPRISE"`
	DashboardCustomerID     string `env:"DASHBOARD_CUSTOMER_ID" envDefault:"cus_demo"`
	DashboardPlan           string `env:"DASHBOARD_PLAN"        envDefault:"professional"`
}

// LoadEnv parses the environment into an Env.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	e.AppURL = strings.TrimRight(e.AppURL, "/")
	e.LLMProvider = strings.ToLower(strings.TrimSpace(e.LLMProvider))
	return e, nil
}

// APIKey returns the key for the configured LLM provider.
func (e Env) APIKey() string {
	if llm.Provider(e.LLMProvider) == llm.ProviderOpenAI {
		return e.OpenAIAPIKey
	}
	return e.GeminiAPIKey
}

// LLMConfig returns the model configuration for the configured provider.
func (e Env) LLMConfig() (*llm.Config, error) {
	cfg, err := llm.ConfigForProvider(e.LLMProvider)
	if err != nil {
		return nil, err
	}
	if e.LLMModel != "" {
		cfg = cfg.WithModel(llm.TierAdvanced, e.LLMModel)
	}
	return cfg, nil
}

// BillingEnabled reports whether Stripe credentials are present.
func (e Env) BillingEnabled() bool {
	return e.StripeSecretKey != ""
}

// StripeConfig builds the Stripe settings, with redirect URLs under AppURL.
func (e Env) StripeConfig() billing.StripeConfig {
	prices := make(map[types.PlanID]string)
	for id, price := range map[types.PlanID]string{
		types.PlanStarter:      e.StripePriceStarter,
		types.PlanProfessional: e.StripePriceProfessional,
		types.PlanEnterprise:   e.StripePriceEnterprise,
	} {
		if price != "" {
			prices[id] = price
		}
	}

	return billing.StripeConfig{
		SecretKey:       e.StripeSecretKey,
		WebhookSecret:   e.StripeWebhookSecret,
		Prices:          prices,
		SuccessURL:      e.AppURL + "/dashboard/billing?checkout=success&session_id={CHECKOUT_SESSION_ID}",
		CancelURL:       e.AppURL + "/pricing",
		PortalReturnURL: e.AppURL + "/dashboard/billing",
	}
}

// ResolveDataDir returns DataDir, or a copydesk directory under the user's
// config directory when unset.
func (e Env) ResolveDataDir() (string, error) {
	if e.DataDir != "" {
		return e.DataDir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(base, "copydesk"), nil
}
