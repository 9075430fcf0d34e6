package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/brevio-cli/internal/application"
	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newSubmitCmd(app *app) *cobra.Command {
	var files []string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit the selection with files for summarization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			attachments, err := attachmentsFor(files)
			if err != nil {
				return err
			}
			selection := app.selection.SetAttachments(attachments)

			var result application.SubmissionResult
			err = runSpinner(cmd.Context(), app.stderr, "Submitting summary request...", func(ctx context.Context) error {
				var submitErr error
				result, submitErr = app.submission.Submit(ctx, selection).Unpack()
				return submitErr
			})
			if err != nil {
				return submissionError(err)
			}

			return writeSubmissionResult(cmd, result, asJSON)
		},
	}

	cmd.Flags().StringArrayVar(&files, "file", nil, "File to summarize (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the raw response data as JSON")

	return cmd
}

func attachmentsFor(paths []string) ([]domain.Attachment, error) {
	attachments := make([]domain.Attachment, 0, len(paths))
	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", path, err)
		}

		attachment := domain.Attachment{Path: absPath, Name: filepath.Base(absPath)}
		if info, err := os.Stat(absPath); err == nil {
			attachment.Size = info.Size()
		}
		attachments = append(attachments, attachment)
	}
	return attachments, nil
}

// submissionError leaves the in-flight rejection unreported; every other
// submit failure already produced a notification.
func submissionError(err error) error {
	if errors.Is(err, domain.ErrSubmissionInFlight) {
		return err
	}

	var validationErr *domain.ValidationError
	var gatewayErr *domain.GatewayError
	if errors.As(err, &validationErr) || errors.As(err, &gatewayErr) {
		return reported(err)
	}
	return err
}

func writeSubmissionResult(cmd *cobra.Command, result application.SubmissionResult, asJSON bool) error {
	out := cmd.OutOrStdout()
	if len(result.Data) == 0 {
		if asJSON {
			_, err := fmt.Fprintln(out, "null")
			return err
		}
		return nil
	}

	if !asJSON {
		var text string
		if err := json.Unmarshal(result.Data, &text); err == nil {
			_, err = fmt.Fprintln(out, text)
			return err
		}
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, result.Data, "", "  "); err != nil {
		return fmt.Errorf("format response data: %w", err)
	}
	_, err := fmt.Fprintln(out, indented.String())
	return err
}
