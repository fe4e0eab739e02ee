package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/purr-dev/purr/internal/common"
	"github.com/purr-dev/purr/internal/config"
	"github.com/purr-dev/purr/internal/vcs"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// applyFlags copies the persistent CLI flags into the config.
func applyFlags(flags *pflag.FlagSet, conf *config.Config) {
	if p, _ := flags.GetString("provider"); p != "" {
		conf.Provider = p
	}
	if m, _ := flags.GetString("model"); m != "" {
		conf.Model = m
	}
	if d, _ := flags.GetBool("debug"); d {
		conf.Debug = true
	}
}

// resolveVCSProvider builds the VCS client from the --vcs flag, the
// config file and token env vars.
func resolveVCSProvider(cmd *cobra.Command, conf config.Config) (vcs.VCSProvider, error) {
	name, _ := cmd.Flags().GetString("vcs")
	vcfg := config.ResolveVCS(conf.Viper, name)
	return vcs.Get(vcfg.Name, vcs.Credentials{Token: vcfg.Token, BaseURL: vcfg.BaseURL})
}

// resolveProjectAndNumber interprets the positional arguments. With two
// args they are <project> <number>; with one arg the project is derived
// from the origin remote of the current directory.
func resolveProjectAndNumber(args []string) (string, int64, error) {
	var project, rawNumber string

	switch len(args) {
	case 2:
		project, rawNumber = args[0], args[1]
	case 1:
		rawNumber = args[0]
		detected, err := common.DetectProject(".")
		if err != nil {
			return "", 0, fmt.Errorf("cannot detect project (pass it explicitly): %w", err)
		}
		project = detected
	default:
		return "", 0, fmt.Errorf("expected <project> <number> or <number>")
	}

	number, err := strconv.ParseInt(rawNumber, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid PR number %q: %w", rawNumber, err)
	}
	return project, number, nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
