package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/credform/internal/app"
	"github.com/abhisek/credform/internal/attachment"
	"github.com/abhisek/credform/internal/qualification"
	"github.com/abhisek/credform/internal/submit"
)

// runApp loads configuration, builds the transport, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	logger, closeLog, err := newLogger(cfg.LogFile, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	set := qualification.NewSet(cfg.Options(time.Now()))
	if path, _ := cmd.Flags().GetString("draft"); path != "" {
		if err := loadDraft(path, set); err != nil {
			return err
		}
	}

	var transport submit.Transport
	recorder := &submit.Recorder{}
	if cfg.HasWebhook() {
		transport = submit.NewWebhook(cfg.WebhookURL, cfg.WebhookTimeout, logger)
	} else {
		fmt.Fprintln(os.Stderr, "No webhook configured; the submitted form will be printed on exit.")
		transport = recorder
	}

	logger.Info("starting", "webhook", cfg.HasWebhook(), "entries", set.Len())
	if err := app.Run(app.Options{
		Set:       set,
		Transport: transport,
		Probe:     attachment.Probe,
		Logger:    logger.With(slog.String("component", "form")),
	}); err != nil {
		return err
	}

	if env, ok := recorder.Last(); ok {
		return submit.WriterTransport{W: cmd.OutOrStdout()}.Send(cmd.Context(), env)
	}
	return nil
}
