package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/purr-dev/purr/internal/config"
	"github.com/purr-dev/purr/internal/provider"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	aiCmd := &cobra.Command{
		Use:   "ai",
		Short: "Inspect and exercise the configured AI providers",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered providers and whether they are usable",
		Run:   runAIList,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the active provider and its resolved settings",
		Run:   runAIShow,
	}

	askCmd := &cobra.Command{
		Use:   "ask <prompt>",
		Short: "Send a free-form prompt to the active provider",
		Args:  cobra.MinimumNArgs(1),
		Run:   runAIAsk,
	}

	aiCmd.AddCommand(listCmd, showCmd, askCmd)
	rootCmd.AddCommand(aiCmd)
}

func runAIList(cmd *cobra.Command, args []string) {
	for _, name := range provider.Names() {
		v := viper.New()
		provider.BindProviderEnvDefaults(name, v)

		p, err := provider.Get(name, v)
		if err != nil {
			fmt.Printf("%-15s unavailable: %v\n", name, err)
			continue
		}

		status := "ready"
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := p.Validate(ctx); err != nil {
			status = fmt.Sprintf("not usable: %v", err)
		}
		cancel()

		fmt.Printf("%-15s %s\n", name, status)
	}
}

func runAIShow(cmd *cobra.Command, args []string) {
	conf := config.NewDefaultConfig()
	applyFlags(cmd.Flags(), &conf)

	p, err := resolveProvider(conf)
	if err != nil {
		fatalf("resolving provider: %v", err)
	}

	info := p.Info()
	fmt.Printf("Provider : %s (%s)\n", info.Name, info.DisplayName)
	fmt.Printf("Model    : %s\n", info.DefaultModel)
	if info.Description != "" {
		fmt.Printf("About    : %s\n", info.Description)
	}
}

func runAIAsk(cmd *cobra.Command, args []string) {
	conf := config.NewDefaultConfig()
	applyFlags(cmd.Flags(), &conf)

	p, err := resolveProvider(conf)
	if err != nil {
		fatalf("resolving provider: %v", err)
	}

	prompt := strings.Join(args, " ")
	if err := streamPrompt(context.Background(), conf, p, prompt); err != nil {
		fatalf("%v", err)
	}
}
