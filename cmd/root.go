package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const skipWireAnnotation = "brevio/skip-wire"

func Execute() error {
	return execute(newRootCmd())
}

// execute prints errors the user has not seen as a notification yet.
func execute(rootCmd *cobra.Command) error {
	err := rootCmd.Execute()
	if err != nil && !isReported(err) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

func newRootCmd() *cobra.Command {
	var debug bool
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "brevio",
		Short:         "Brevio CLI: assemble and submit summarization jobs",
		Long:          "brevio lets you sign in, browse the language, model, format, level and category catalogs, build a consistent selection and submit files for summarization from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, skip := cmd.Annotations[skipWireAnnotation]; skip {
				return nil
			}
			if err := app.wire(cmd.Context(), wireOptions{Debug: debug, Stderr: cmd.ErrOrStderr()}); err != nil {
				return fmt.Errorf("wire app: %w", err)
			}
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			app.close()
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log debug output to stderr")

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newRegisterCmd(app),
		newLogoutCmd(app),
		newSessionCmd(app),
		newCatalogCmd(app),
		newSelectCmd(app),
		newToolCmd(app),
		newPanelCmd(app),
		newSubmitCmd(app),
	)

	return rootCmd
}

// reportedError marks a failure the user already saw as a notification.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

func isReported(err error) bool {
	var target *reportedError
	return errors.As(err, &target)
}
