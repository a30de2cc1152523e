package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	editoruc "example.com/finproducts-admin/internal/usecase/editor"
	formuc "example.com/finproducts-admin/internal/usecase/form"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	RunE:  runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)
	addFieldFlags(createCmd)
	createCmd.Flags().String("id", "", "Product id (3-10 characters, unique)")
}

func addFieldFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Product name (5-100 characters)")
	cmd.Flags().String("description", "", "Product description (10-200 characters)")
	cmd.Flags().String("logo", "", "Logo URL")
	cmd.Flags().String("release", "", "Release date, YYYY-MM-DD, today or later")
}

func runCreate(cmd *cobra.Command, _ []string) error {
	logger := newLogger()
	svc := editoruc.NewService(editoruc.Config{
		Gateway:        newGateway(logger),
		Notifier:       stdoutNotifier{},
		Logger:         logger,
		DebounceWindow: viper.GetDuration("uniqueness_debounce"),
	})
	defer svc.Close()

	applyFieldFlags(cmd, svc)
	id, _ := cmd.Flags().GetString("id")
	svc.Form().SetValue(formuc.FieldID, id)

	return submit(cmd, svc)
}

func applyFieldFlags(cmd *cobra.Command, svc *editoruc.Service) {
	f := svc.Form()
	if cmd.Flags().Changed("name") {
		v, _ := cmd.Flags().GetString("name")
		f.SetValue(formuc.FieldName, v)
	}
	if cmd.Flags().Changed("description") {
		v, _ := cmd.Flags().GetString("description")
		f.SetValue(formuc.FieldDescription, v)
	}
	if cmd.Flags().Changed("logo") {
		v, _ := cmd.Flags().GetString("logo")
		f.SetValue(formuc.FieldLogo, v)
	}
	if cmd.Flags().Changed("release") {
		v, _ := cmd.Flags().GetString("release")
		f.SetValue(formuc.FieldDateRelease, v)
	}
}

// submit waits out the debounced id check, then runs the submit contract.
func submit(cmd *cobra.Command, svc *editoruc.Service) error {
	deadline := time.Now().Add(viper.GetDuration("http_timeout") + viper.GetDuration("uniqueness_debounce"))
	for svc.Form().Pending() && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}

	err := svc.Submit(cmd.Context())
	if errors.Is(err, editoruc.ErrFormInvalid) {
		printFieldErrors(svc.Form())
	}
	return err
}

func printFieldErrors(f *formuc.Form) {
	for _, field := range formuc.Fields {
		state := f.Field(field)
		for _, msg := range state.Errors {
			fmt.Printf("  %s: %s\n", field, msg)
		}
		if state.AsyncError != "" {
			fmt.Printf("  %s: %s\n", field, state.AsyncError)
		}
	}
}
