package provider

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// ProviderConfig holds the resolved configuration for instantiating a
// provider, so the CLI layer does not need to know about config paths.
type ProviderConfig struct {
	// Name is the provider name as it appears in the registry.
	Name string

	// Viper is a subtree scoped to the provider's config block.
	Viper *viper.Viper
}

// ConfigKeyProvider is the config key that holds the active provider name.
const ConfigKeyProvider = "provider"

// ResolveProvider reads the active provider name and its config block.
// The lookup order is:
//
//  1. --provider CLI flag (already set on the viper)
//  2. PURR_PROVIDER environment variable
//  3. "provider" key in the config file (~/.config/purr/config.yml)
//  4. fallback to "openai"
func ResolveProvider(v *viper.Viper) ProviderConfig {
	name := v.GetString(ConfigKeyProvider)
	if name == "" {
		name = os.Getenv("PURR_PROVIDER")
	}
	if name == "" {
		name = "openai"
	}
	name = strings.ToLower(strings.TrimSpace(name))

	sub := v.Sub(fmt.Sprintf("providers.%s", name))
	if sub == nil {
		// No config file entry; an empty viper still picks up the
		// env-var bindings below.
		sub = viper.New()
	}

	bindProviderEnvVars(name, sub)

	return ProviderConfig{Name: name, Viper: sub}
}

// bindProviderEnvVars wires well-known environment variables for each
// provider so users can configure purr entirely through the shell.
func bindProviderEnvVars(name string, v *viper.Viper) {
	switch name {
	case "openai":
		v.SetDefault("model", "gpt-4o")
		v.SetDefault("base_url", "https://api.openai.com/v1")
		overrideFromEnv(v, "api_key", "OPENAI_API_KEY")
		overrideFromEnv(v, "model", "OPENAI_API_MODEL")
		overrideFromEnv(v, "base_url", "OPENAI_API_BASE")
	case "anthropic", "claude":
		v.SetDefault("model", "claude-sonnet-4-20250514")
		v.SetDefault("base_url", "https://api.anthropic.com")
		overrideFromEnv(v, "api_key", "ANTHROPIC_API_KEY")
		overrideFromEnv(v, "model", "ANTHROPIC_MODEL")
		overrideFromEnv(v, "base_url", "ANTHROPIC_API_BASE")
	default:
		// OpenAI-compatible endpoints (Ollama, LM Studio, proxies):
		// PURR_<PROVIDER>_* env vars.
		prefix := strings.ToUpper(name)
		overrideFromEnv(v, "api_key", fmt.Sprintf("PURR_%s_API_KEY", prefix))
		overrideFromEnv(v, "model", fmt.Sprintf("PURR_%s_MODEL", prefix))
		overrideFromEnv(v, "base_url", fmt.Sprintf("PURR_%s_BASE_URL", prefix))
	}
}

// BindProviderEnvDefaults applies the defaults and env-var overrides of
// bindProviderEnvVars to an arbitrary viper; used by introspection
// commands that enumerate providers without a config file.
func BindProviderEnvDefaults(name string, v *viper.Viper) {
	bindProviderEnvVars(name, v)
}

func overrideFromEnv(v *viper.Viper, key, envName string) {
	if value := strings.TrimSpace(os.Getenv(envName)); value != "" {
		v.Set(key, value)
	}
}

// SampleConfigYAML returns an example config.yml documenting all provider
// settings. Used by "purr config init".
func SampleConfigYAML() string {
	return `# purr configuration
# Active provider (openai | anthropic | custom OpenAI-compatible).
provider: openai

# Provider-specific settings.
providers:
  openai:
    # api_key can also be set via OPENAI_API_KEY env var.
    api_key: ""
    model: "gpt-4o"
    # base_url: "https://api.openai.com/v1"  # override for proxies
    max_tokens: 1024
    timeout: 30s

  anthropic:
    # api_key can also be set via ANTHROPIC_API_KEY env var.
    api_key: ""
    model: "claude-sonnet-4-20250514"
    max_tokens: 1024
    timeout: 30s

  # Example: self-hosted Ollama or any OpenAI-compatible endpoint.
  ollama:
    base_url: "http://localhost:11434/v1"
    model: "llama3"
    max_tokens: 1024
    timeout: 60s

# VCS access tokens; GITHUB_TOKEN / GITLAB_TOKEN env vars also work.
vcs:
  github:
    token: ""
  gitlab:
    token: ""
    # base_url: "https://gitlab.example.com"  # self-hosted

# Review behaviour.
review:
  # Comma-separated globs; prefix with ! to exclude.
  # file_filter: "*.go,!vendor/*"
  # Token budget per summary batch.
  max_batch_tokens: 80000
  # Skip posting, print the review instead.
  dry_run: false
`
}
