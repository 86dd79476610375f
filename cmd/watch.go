package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/KaramelBytes/mdsummary/internal/utils"
	"github.com/KaramelBytes/mdsummary/internal/watcher"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate SUMMARY.md whenever the documentation tree changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSettings(cmd)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runWatch(ctx, cmd, s)
	},
}

func runWatch(ctx context.Context, cmd *cobra.Command, s settings) error {
	logger := setupLogger(s.LogLevel)
	fs := afero.NewOsFs()
	b, matcher, err := newBuilder(fs, s, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	dest := s.SummaryPath()
	regenerate := func() error {
		content, err := b.Assemble()
		if err != nil {
			return err
		}
		if err := utils.SafeWriteFile(fs, dest, []byte(content)); err != nil {
			return fmt.Errorf("write %s: %w", dest, err)
		}
		fmt.Fprintf(out, "%s Generated %s\n", okMark(), pathStyle.Render(dest))
		return nil
	}

	// The first run surfaces a bad root before anything is watched.
	if err := regenerate(); err != nil {
		return err
	}

	w, err := watcher.New(s.Root, matcher, s.Debounce, logger)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()
	go w.Run(ctx)

	logger.Info("watching documentation tree", "root", s.Root, "debounce", s.Debounce)
	gitignorePath := filepath.Join(s.Root, ".gitignore")
	for {
		select {
		case <-ctx.Done():
			logger.Info("stopped watching", "root", s.Root)
			return nil
		case batch := <-w.Changes():
			for _, c := range batch {
				if c.Path == gitignorePath {
					matcher.Reload()
					break
				}
			}
			logger.Debug("regenerating", "changes", len(batch))
			if err := regenerate(); err != nil {
				// Keep watching; the tree may be mid-edit.
				fmt.Fprintf(cmd.ErrOrStderr(), "%s Warning: %v\n", warnMark(), err)
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
