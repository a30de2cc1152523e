package cli

import (
	"github.com/spf13/cobra"

	domproduct "example.com/finproducts-admin/internal/domain/product"
)

var getCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show a single product",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	p, err := newGateway(logger).GetByID(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	printProducts([]domproduct.FinancialProduct{*p})
	return nil
}
