// Package main provides the CLI entrypoint for persona.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/persona-tui/persona/internal/bank"
	"github.com/persona-tui/persona/internal/config"
	"github.com/persona-tui/persona/internal/model"
	"github.com/persona-tui/persona/internal/report"
	"github.com/persona-tui/persona/internal/session"
	"github.com/persona-tui/persona/internal/share"
	"github.com/persona-tui/persona/internal/tui"
)

const defaultShareBase = ""

var (
	runBank    string
	runOut     string
	runNoColor bool

	shareBaseURL string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "persona",
		Short:         "TUI personality assessment",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runAssessmentCmd,
	}

	rootCmd.Flags().StringVar(&runBank, "bank", "", "question bank path, URL, or installed bank name")
	rootCmd.Flags().StringVar(&runOut, "out", "", "write the result JSON to a file after completion")
	rootCmd.Flags().BoolVar(&runNoColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().StringVar(&shareBaseURL, "share-base", defaultShareBase, "base URL for share links")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newBanksCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newDecodeCmd())

	return rootCmd
}

func runAssessmentCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "bank", &runBank, fileCfg.Test.Bank)
	applyStringConfig(cmd, "out", &runOut, fileCfg.Test.Out)
	applyBoolConfig(cmd, "no-color", &runNoColor, fileCfg.Test.NoColor)
	applyStringConfig(cmd, "share-base", &shareBaseURL, fileCfg.Share.BaseURL)

	if runBank == "" {
		return bankRequiredError()
	}
	if runNoColor {
		if err := os.Setenv("NO_COLOR", "1"); err != nil {
			return fmt.Errorf("failed to disable color: %w", err)
		}
	}

	loaded, err := loadBank(cmd.Context(), runBank)
	if err != nil {
		return err
	}

	sess := session.New()
	sess.SetBank(loaded)

	uiModel := tui.NewModel(sess, shareBaseURL)
	program := tea.NewProgram(uiModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	result := uiModel.Result()
	if result == nil {
		logErrln("assessment abandoned; no result")
		return nil
	}

	out := cmd.OutOrStdout()
	if err := report.Render(out, result, report.TerminalWidth()); err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}
	if err := report.RenderInterpretation(out, result, loaded.Interpretation); err != nil {
		return fmt.Errorf("failed to render interpretation: %w", err)
	}
	if _, err := fmt.Fprintf(out, "\nShare: %s\n", share.EncodeURL(shareBaseURL, result)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if runOut != "" {
		if err := writeResultJSON(runOut, result); err != nil {
			return err
		}
		logErrf("Wrote %s\n", runOut)
	}
	return nil
}

// loadBank resolves a bank source: a path or URL is used directly, and
// a bare name is looked up in the XDG bank directory.
func loadBank(ctx context.Context, source string) (*model.QuestionBank, error) {
	resolved := source
	if !bank.IsURL(source) {
		if _, err := os.Stat(source); err != nil {
			installed := config.DefaultBankPath(source)
			if _, ierr := os.Stat(installed); ierr == nil {
				resolved = installed
			}
		}
	}
	loaded, err := bank.Load(ctx, resolved)
	if err != nil {
		return nil, err
	}
	return loaded, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newBanksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "List installed question banks",
		Args:  cobra.NoArgs,
		RunE:  runBanksCmd,
	}
}

func runBanksCmd(cmd *cobra.Command, _ []string) error {
	bankDir := config.DefaultBankDir()
	entries, err := os.ReadDir(bankDir)
	if err != nil {
		if os.IsNotExist(err) {
			logErrf("No banks found. Put bank JSON files in: %s\n", bankDir)
			return fmt.Errorf("bank directory does not exist")
		}
		return fmt.Errorf("failed to read bank directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".json"))
	}
	if len(names) == 0 {
		logErrf("No banks found. Put bank JSON files in: %s\n", bankDir)
		return fmt.Errorf("no banks found")
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path|url>",
		Short: "Validate a question bank file",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidateCmd,
	}
}

func runValidateCmd(cmd *cobra.Command, args []string) error {
	loaded, err := loadBank(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "OK: %q (%s), %d dimensions, %d questions\n",
		loaded.Metadata.Title, loaded.Metadata.Model, len(loaded.Dimensions), len(loaded.Questions))
	return err
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <url|query>",
		Short: "Render a result from a shared link",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecodeCmd,
	}
}

func runDecodeCmd(cmd *cobra.Command, args []string) error {
	result, err := share.DecodeString(args[0])
	if err != nil {
		return err
	}
	return report.Render(cmd.OutOrStdout(), result, report.TerminalWidth())
}

func writeResultJSON(path string, result any) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

func bankRequiredError() error {
	lines := []string{
		"no question bank selected",
		"Pass one with: persona --bank <path|url|name>",
		"List installed banks: persona banks",
		fmt.Sprintf("Or set one in the config: %s", config.DefaultConfigPath()),
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return `# persona configuration
# Uncomment a value to enable it. CLI flags override config values.

[test]
# bank = "mbti"           # Bank path, URL, or installed bank name
# out = ""                # Write result JSON to this path after completion
# no-color = false        # Disable color output

[share]
# base-url = ""           # Base URL prepended to share links
`
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
