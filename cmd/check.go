package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// ErrStale is returned by check when the summary on disk is missing or out
// of date.
var ErrStale = errors.New("summary is out of date")

var checkQuiet bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fail if SUMMARY.md does not match the documentation tree",
	Long: `check builds the summary in memory and compares it with the file on disk.
It prints a unified diff and exits non-zero when they differ. Nothing is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSettings(cmd)
		if err != nil {
			return err
		}
		osFs := afero.NewOsFs()
		b, _, err := newBuilder(osFs, s, setupLogger(s.LogLevel))
		if err != nil {
			return err
		}
		want, err := b.Assemble()
		if err != nil {
			return err
		}

		dest := s.SummaryPath()
		got, err := afero.ReadFile(osFs, dest)
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", ErrStale, dest)
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", dest, err)
		}

		if string(got) == want {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is up to date\n", okMark(), pathStyle.Render(dest))
			return nil
		}
		if !checkQuiet {
			diff, err := summaryDiff(string(got), want, s.SummaryFile)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), diff)
		}
		return fmt.Errorf("%w: run mdsummary to regenerate %s", ErrStale, dest)
	},
}

// summaryDiff renders a unified diff from the file on disk to the freshly
// generated summary.
func summaryDiff(current, generated, name string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(current),
		B:        difflib.SplitLines(generated),
		FromFile: name + " (on disk)",
		ToFile:   name + " (generated)",
		Context:  3,
	}
	out, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diff: %w", err)
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false, "do not print the diff")
}
