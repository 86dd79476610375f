package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/mdsummary/internal/config"
	"github.com/KaramelBytes/mdsummary/internal/title"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set mdsummary configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded; using defaults")
		}
		s, err := resolveSettings(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "docs_root: %s\n", s.Root)
		fmt.Fprintf(out, "summary_file: %s\n", s.SummaryFile)
		fmt.Fprintf(out, "heading_parser: %s\n", s.Parser)
		if len(s.Exclude) > 0 {
			fmt.Fprintf(out, "exclude: %s\n", strings.Join(s.Exclude, ", "))
		}
		fmt.Fprintf(out, "use_gitignore: %t\n", s.Gitignore)
		fmt.Fprintf(out, "watch_debounce_ms: %d\n", s.Debounce.Milliseconds())
		fmt.Fprintf(out, "log_level: %s\n", s.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		if err := setConfigValue(cfg, key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Saved config\n", okMark())
		return nil
	},
}

func setConfigValue(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "docs_root":
		c.DocsRoot = val
	case "summary_file":
		if val == "" || strings.ContainsAny(val, `/\`) {
			return fmt.Errorf("invalid summary_file: %q (use a plain filename)", val)
		}
		c.SummaryFile = val
	case "heading_parser":
		if _, err := title.ParserFor(val); err != nil {
			return err
		}
		c.HeadingParser = strings.ToLower(val)
	case "exclude":
		c.Exclude = nil
		for _, p := range strings.Split(val, ",") {
			if p = strings.TrimSpace(p); p != "" {
				c.Exclude = append(c.Exclude, p)
			}
		}
	case "use_gitignore":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for use_gitignore: %v", val)
		}
		c.UseGitignore = b
	case "watch_debounce_ms":
		i, err := strconv.Atoi(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid int for watch_debounce_ms: %v", val)
		}
		c.WatchDebounceMs = i
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "error":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
