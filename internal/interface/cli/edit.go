package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	editoruc "example.com/finproducts-admin/internal/usecase/editor"
)

var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit an existing product",
	Long: `Edit an existing product. The current values are loaded first;
only the fields given as flags change. The id itself is immutable.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
	addFieldFlags(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	svc := editoruc.NewService(editoruc.Config{
		Gateway:        newGateway(logger),
		Notifier:       stdoutNotifier{},
		Logger:         logger,
		Route:          editoruc.Route{Edit: true, ProductID: args[0]},
		DebounceWindow: viper.GetDuration("uniqueness_debounce"),
	})
	defer svc.Close()

	if err := svc.Open(cmd.Context()); err != nil {
		return err
	}
	applyFieldFlags(cmd, svc)

	return submit(cmd, svc)
}
