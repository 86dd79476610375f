package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/mdsummary/internal/utils"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	genDryRun bool
	genQuiet  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write SUMMARY.md for the documentation root",
	Example: `  mdsummary generate
  mdsummary generate --root docs --dry-run
  mdsummary generate -r docs --parser goldmark --exclude 'drafts/**'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, genDryRun, genQuiet)
	},
}

func runGenerate(cmd *cobra.Command, dryRun, quiet bool) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(s.LogLevel)
	fs := afero.NewOsFs()

	b, _, err := newBuilder(fs, s, logger)
	if err != nil {
		return err
	}
	content, err := b.Assemble()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if dryRun {
		fmt.Fprint(out, content)
		return nil
	}

	dest := s.SummaryPath()
	if err := utils.SafeWriteFile(fs, dest, []byte(content)); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	fmt.Fprintf(out, "%s Generated %s\n", okMark(), pathStyle.Render(dest))
	if !quiet {
		fmt.Fprintln(out, "\nGenerated structure:")
		fmt.Fprintln(out, dimStyle.Render(strings.Repeat("-", 40)))
		fmt.Fprintln(out, content)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "print the summary without writing it")
	generateCmd.Flags().BoolVarP(&genQuiet, "quiet", "q", false, "do not echo the generated summary")
}
