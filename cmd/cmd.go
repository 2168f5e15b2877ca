package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/thiagokokada/git-lastseen/internal/buildinfo"
	"github.com/thiagokokada/git-lastseen/internal/config"
	"github.com/thiagokokada/git-lastseen/internal/git"
	"github.com/thiagokokada/git-lastseen/internal/lastseen"
	"github.com/thiagokokada/git-lastseen/internal/report"
	"github.com/thiagokokada/git-lastseen/internal/watch"
)

func Run() error {
	return NewRootCmd().Execute()
}

type options struct {
	branch       string
	color        string
	listBranches bool
	watch        bool
	verbose      bool
}

// NewRootCmd builds the git-lastseen command.
func NewRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "git-lastseen [repo]",
		Short: "Show when each author last committed to a branch",
		Long: "git-lastseen walks the history of a branch, newest first, and prints the\n" +
			"date of every author's most recent commit. The repository defaults to the\n" +
			"parent directory and the branch to " + config.DefaultBranch + ".",
		Args:          cobra.MaximumNArgs(1),
		Version:       buildinfo.VersionWithTags(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\nbackend: " + git.BackendDescription() + "\n")

	flags := cmd.Flags()
	flags.StringVarP(&opts.branch, "branch", "b", "", "branch to inspect (default "+config.DefaultBranch+")")
	flags.StringVar(&opts.color, "color", report.ColorNever.String(), "highlight output: never, auto, light, or dark")
	flags.BoolVar(&opts.listBranches, "list-branches", false, "list local branches and exit")
	flags.BoolVar(&opts.watch, "watch", false, "print again whenever the branch changes")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	return cmd
}

func run(cmd *cobra.Command, args []string, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	level := cfg.LogLevel
	if opts.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	repoPath := cfg.Repo
	if len(args) > 0 {
		repoPath = args[0]
	}
	branch := cfg.Branch
	if cmd.Flags().Changed("branch") {
		branch = opts.branch
	}
	color, err := report.ParseColorMode(opts.color)
	if err != nil {
		return err
	}

	svc, err := git.Open(repoPath)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	slog.Debug("repository opened",
		slog.String("path", svc.RepoPath()),
		slog.String("backend", git.BackendDescription()),
		slog.String("branch", branch),
	)

	if opts.listBranches {
		branches, err := svc.LocalBranchNames()
		if err != nil {
			return fmt.Errorf("list branches: %w", err)
		}
		for _, name := range branches {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	renderOpts := report.Options{Color: color, IsTerminal: isTerminal(out)}
	dates, err := lastseen.Branch(svc, branch)
	if err != nil {
		return err
	}
	if err := report.Write(out, dates, renderOpts); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if !opts.watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	last := dates
	return watch.Run(ctx, svc.RepoPath(), watch.DefaultDelay, func() {
		dates, err := lastseen.Branch(svc, branch)
		if err != nil {
			slog.Error("refresh failed", slog.String("branch", branch), slog.Any("error", err))
			return
		}
		if dates.Equal(last) {
			slog.Debug("author dates unchanged", slog.String("branch", branch))
			return
		}
		last = dates
		if err := report.Write(out, dates, renderOpts); err != nil {
			slog.Error("write report", slog.Any("error", err))
		}
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
