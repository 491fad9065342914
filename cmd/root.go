package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/credform/internal/attachment"
	"github.com/abhisek/credform/internal/config"
	"github.com/abhisek/credform/internal/draft"
	"github.com/abhisek/credform/internal/qualification"
)

var rootCmd = &cobra.Command{
	Use:   "credform",
	Short: "Fill in and submit academic qualification details",
	Long:  "credform is a terminal form for collecting academic qualifications with per-entry validation and PDF attachments.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("env-file", "", "Path to a .env file (default: ./.env when present)")
	rootCmd.PersistentFlags().String("webhook", "", "Webhook URL for submissions (overrides CREDFORM_WEBHOOK_URL)")
	rootCmd.Flags().String("draft", "", "Prefill the form from a draft JSON file")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration from --env-file, the environment, and
// the --webhook flag, in increasing priority.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if u, _ := cmd.Flags().GetString("webhook"); u != "" {
		cfg.WebhookURL = u
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// newLogger returns a text logger writing to path, or to w when path is
// empty. The returned close function is never nil.
func newLogger(path string, w io.Writer) (*slog.Logger, func() error, error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(w, nil)), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, nil)), f.Close, nil
}

// loadDraft parses the draft at path and replays it into set. Relative
// document paths are resolved against the draft's directory.
func loadDraft(path string, set *qualification.Set) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open draft: %w", err)
	}
	defer f.Close()

	d, err := draft.Parse(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return d.Apply(set, probeRelativeTo(filepath.Dir(path)))
}

func probeRelativeTo(dir string) draft.ProbeFunc {
	return func(p string) (qualification.Document, error) {
		if !filepath.IsAbs(p) && !strings.HasPrefix(p, "~/") {
			p = filepath.Join(dir, p)
		}
		return attachment.Probe(p)
	}
}
