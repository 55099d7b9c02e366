package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/wahlandcase/attuned.issuekey/internal/config"
	"github.com/wahlandcase/attuned.issuekey/internal/git"
	"github.com/wahlandcase/attuned.issuekey/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
)

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	verbosity  int
	dir        string
	configFile string
	backend    string
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "issuekey",
		Short: "Require the branch's issue key at the start of every commit subject",
		Long: `issuekey is a git commit-msg hook. It extracts an issue key such as ABC-123
from the current branch name and checks that the commit subject starts with it,
optionally inserting the key when it is missing.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	flags.StringVarP(&opts.dir, "dir", "C", "", "Run as if started in this directory")
	flags.StringVar(&opts.configFile, "config", "", "Config file layered over the user and repository config")
	flags.StringVar(&opts.backend, "backend", "", "Git backend: cli or go-git (overrides config)")

	rootCmd.AddCommand(
		newCheckCmd(opts),
		newInstallCmd(opts),
		newUninstallCmd(opts),
		newInitCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

// workDir returns the directory commands operate in
func (o *rootOptions) workDir() (string, error) {
	if o.dir != "" {
		return filepath.Abs(o.dir)
	}
	return os.Getwd()
}

// repoRoot returns the work-tree root containing dir, or "" outside a repository
func repoRoot(ctx context.Context, dir string) string {
	repo, err := git.Open(dir)
	if err != nil {
		log.Debug().Err(err).Str("dir", dir).Msg("Not inside a git repository")
		return ""
	}
	root, err := repo.WorkTreeRoot(ctx)
	if err != nil {
		return ""
	}
	return root
}

// loadConfig loads the layered config for dir and applies flag overrides
func (o *rootOptions) loadConfig(ctx context.Context, dir string) (*config.Config, string, error) {
	root := repoRoot(ctx, dir)

	cfg, err := config.Load(config.LoadOptions{
		UserFile: config.UserConfigPath(),
		RepoRoot: root,
		File:     o.configFile,
	})
	if err != nil {
		return nil, root, &exitError{code: exitConfig, err: err}
	}
	if o.backend != "" {
		cfg.Backend = o.backend
	}

	log.Debug().Strs("sources", cfg.Sources()).Str("backend", cfg.Backend).Msg("Configuration loaded")
	return cfg, root, nil
}

// openBackend opens the configured git backend at the repository root
func (o *rootOptions) openBackend(cfg *config.Config, dir, root string) (git.Backend, error) {
	if root != "" {
		dir = root
	}
	backend, err := git.OpenBackend(cfg.Backend, dir)
	if err != nil {
		return nil, &exitError{code: exitConfig, err: err}
	}
	return backend, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "issuekey version %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", commit)
		},
	}
}
