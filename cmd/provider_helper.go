package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/purr-dev/purr/internal/config"
	"github.com/purr-dev/purr/internal/provider"
	"github.com/purr-dev/purr/internal/renders"
)

// resolveProvider creates an AIProvider from the current config.
func resolveProvider(conf config.Config) (provider.AIProvider, error) {
	pcfg := provider.ResolveProvider(conf.Viper)

	// Override provider name from CLI
	if conf.Provider != "" {
		pcfg.Name = conf.Provider
		provider.BindProviderEnvDefaults(pcfg.Name, pcfg.Viper)
	}

	// Override model from CLI
	if conf.Model != "" {
		pcfg.Viper.Set("model", conf.Model)
	}

	return provider.Get(pcfg.Name, pcfg.Viper)
}

// streamPrompt sends a prompt to the provider and renders the streamed
// reply to the terminal.
func streamPrompt(ctx context.Context, conf config.Config, p provider.AIProvider, userPrompt string) error {
	if conf.Debug {
		info := p.Info()
		fmt.Fprintf(os.Stderr, "[debug] provider=%s model=%s\n", info.Name, info.DefaultModel)
	}

	result := p.CompleteStream(ctx, provider.CompletionRequest{
		Model: conf.Model,
		Messages: []provider.Message{
			{Role: provider.RoleSystem, Content: "You are a helpful assistant and source code reviewer."},
			{Role: provider.RoleUser, Content: userPrompt},
		},
	})
	return renders.RenderStream(result)
}
