package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wahlandcase/attuned.issuekey/internal/git"
)

func newInstallCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the commit-msg hook into the current repository",
		Long: `Install writes a commit-msg hook that runs "issuekey check". An existing
hook is kept as commit-msg.backup unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hooksDir, err := opts.hooksDir(cmd)
			if err != nil {
				return err
			}

			path, err := git.Install(hooksDir, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Installed %s hook at %s\n", git.HookName, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing hook without keeping a backup")
	return cmd
}

func newUninstallCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the commit-msg hook and restore any backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hooksDir, err := opts.hooksDir(cmd)
			if err != nil {
				return err
			}

			if err := git.Uninstall(hooksDir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s hook from %s\n", git.HookName, hooksDir)
			return nil
		},
	}
}

func (o *rootOptions) hooksDir(cmd *cobra.Command) (string, error) {
	ctx := cmd.Context()

	dir, err := o.workDir()
	if err != nil {
		return "", err
	}

	cfg, root, err := o.loadConfig(ctx, dir)
	if err != nil {
		return "", err
	}
	if root == "" {
		return "", fmt.Errorf("%s is not inside a git repository", dir)
	}

	backend, err := o.openBackend(cfg, dir, root)
	if err != nil {
		return "", err
	}
	return backend.HooksDir(ctx)
}
