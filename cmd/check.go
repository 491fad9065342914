package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/credform/internal/qualification"
	"github.com/abhisek/credform/internal/screens/summary"
	"github.com/abhisek/credform/internal/submit"
)

// errDraftNotReady is returned after the failure table has been printed.
var errDraftNotReady = errors.New("draft is not ready to submit")

var checkCmd = &cobra.Command{
	Use:   "check <draft.json>",
	Short: "Validate a draft file without opening the form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, closeLog, err := newLogger(cfg.LogFile, os.Stderr)
		if err != nil {
			return err
		}
		defer closeLog()

		now := time.Now()
		set := qualification.NewSet(cfg.Options(now))
		if err := loadDraft(args[0], set); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		snap, err := set.ValidateForSubmission()
		if err != nil {
			var verr *qualification.ValidationError
			if errors.As(err, &verr) {
				printFailures(out, set, verr)
				return errDraftNotReady
			}
			return err
		}

		for i, e := range snap.Entries {
			fmt.Fprintln(out, summary.EntryLine(i+1, e))
		}
		fmt.Fprintf(out, "\n%d qualification(s) ready to submit\n", len(snap.Entries))

		if submitNow, _ := cmd.Flags().GetBool("submit"); !submitNow {
			return nil
		}

		env := submit.NewEnvelope(snap, now)
		var transport submit.Transport = submit.WriterTransport{W: out}
		if cfg.HasWebhook() {
			transport = submit.NewWebhook(cfg.WebhookURL, cfg.WebhookTimeout, logger)
		}
		if err := transport.Send(cmd.Context(), env); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Form submitted successfully!", env.ID)
		return nil
	},
}

func init() {
	checkCmd.Flags().Bool("submit", false, "Submit the draft when it is valid (to the webhook, or stdout without one)")
}

// printFailures lists validation failures grouped by entry position.
func printFailures(w io.Writer, set *qualification.Set, verr *qualification.ValidationError) {
	position := make(map[int]int, set.Len())
	for i, e := range set.Entries() {
		position[e.ID] = i + 1
	}

	byEntry := verr.ByEntry()
	ids := make([]int, 0, len(byEntry))
	for id := range byEntry {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return position[ids[i]] < position[ids[j]] })

	fmt.Fprintf(w, "%-15s  %-22s  %s\n", "QUALIFICATION", "FIELD", "PROBLEM")
	fmt.Fprintln(w, strings.Repeat("─", 70))
	for _, id := range ids {
		for _, f := range byEntry[id] {
			fmt.Fprintf(w, "%-15s  %-22s  %v\n",
				fmt.Sprintf("Qualification %d", position[id]), f.Field.Label(), f.Kind)
		}
	}
	fmt.Fprintf(w, "\n%d problem(s)\n", len(verr.Failures))
}
