package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wahlandcase/attuned.issuekey/internal/hook"
	"github.com/wahlandcase/attuned.issuekey/internal/logging"
	"github.com/wahlandcase/attuned.issuekey/internal/message"
	"github.com/wahlandcase/attuned.issuekey/internal/ui"
)

type checkOptions struct {
	*rootOptions
	format string
	insert bool
	dryRun bool
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	opts := &checkOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "check <commit-msg-file>",
		Short: "Check a commit message for the branch's issue key (commit-msg hook)",
		Long: `Check is what the installed commit-msg hook runs. It exits 0 when the
subject starts with the branch's issue key, when the branch is ignored, or
when the key was inserted, and 1 when the commit must be rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text, json or yaml")
	cmd.Flags().BoolVar(&opts.insert, "insert", false, "Insert the issue key when missing (overrides insert_automatically)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the rewritten message instead of writing it")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *checkOptions, msgPath string) error {
	ctx := cmd.Context()
	logger := logging.GetLogger("check")

	format, err := ui.ParseFormat(opts.format)
	if err != nil {
		return &exitError{code: exitConfig, err: err}
	}

	dir, err := opts.workDir()
	if err != nil {
		return err
	}

	cfg, root, err := opts.loadConfig(ctx, dir)
	if err != nil {
		return err
	}
	if opts.insert {
		cfg.InsertAutomatically = true
	}

	// Invalid patterns abort before any git query
	set, err := cfg.Patterns()
	if err != nil {
		return &exitError{code: exitConfig, err: err}
	}

	backend, err := opts.openBackend(cfg, dir, root)
	if err != nil {
		return err
	}

	var store hook.MessageStore = message.NewFileStore(msgPath)
	var preview *message.MemoryStore
	if opts.dryRun {
		msg, err := store.Read()
		if err != nil {
			return err
		}
		preview = &message.MemoryStore{Message: msg}
		store = preview
	}

	engine := hook.NewEngine(hook.Options{
		VCS:                 backend,
		Rebase:              backend,
		Patterns:            set,
		Store:               store,
		InsertAutomatically: cfg.InsertAutomatically,
		Logger:              logging.GetLogger("engine"),
	})

	out := cmd.OutOrStdout()
	color := false
	if format == ui.FormatText {
		out = cmd.ErrOrStderr()
		if f, ok := out.(*os.File); ok {
			color = ui.UseColor(f)
		}
	}

	dispatcher := &hook.Dispatcher{
		Reporter: ui.NewRenderer(out, format, color),
		Logger:   logger,
	}
	code := dispatcher.Dispatch(ctx, engine)

	if preview != nil && preview.Writes > 0 {
		fmt.Fprint(cmd.OutOrStdout(), preview.Message.String())
	}

	if code != hook.ExitOK {
		return &exitError{code: code}
	}
	return nil
}
