package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/credform/internal/qualification"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the allowed values of every select field",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		printOptions(cmd.OutOrStdout(), cfg.Options(time.Now()))
		return nil
	},
}

func printOptions(w io.Writer, opts qualification.Options) {
	years := "none"
	if n := len(opts.Years); n > 0 {
		years = fmt.Sprintf("%d – %d", opts.Years[n-1], opts.Years[0])
	}

	rows := []struct {
		field  qualification.Field
		values string
	}{
		{qualification.FieldCredentialType, join(opts.CredentialTypes)},
		{qualification.FieldBranch, join(opts.Branches)},
		{qualification.FieldResultStatus, join(opts.ResultStatuses)},
		{qualification.FieldMarksType, join(opts.MarksTypes)},
		{qualification.FieldGrade, join(opts.Grades)},
		{qualification.FieldPassingYear, years},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%-20s  %-22s  %s\n", r.field, r.field.Label(), r.values)
	}
	fmt.Fprintf(w, "%-20s  %-22s  %s, at most %s bytes\n", "document", "Upload Document",
		opts.DocumentMIMEType, strconv.FormatInt(opts.MaxDocumentSize, 10))
}

func join[T ~string](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
