package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	domproduct "example.com/finproducts-admin/internal/domain/product"
	listuc "example.com/finproducts-admin/internal/usecase/list"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog products",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("search", "", "Filter by name or description (case-insensitive)")
	listCmd.Flags().Int("limit", listuc.DefaultQuantity, "Show at most N products")
}

func runList(cmd *cobra.Command, _ []string) error {
	logger := newLogger()
	svc := listuc.NewService(newGateway(logger), logger)

	if err := svc.Load(cmd.Context()); err != nil {
		return err
	}

	// Search and limit are independent projections; search wins when both
	// are given, matching the screen it mirrors.
	search, _ := cmd.Flags().GetString("search")
	limit, _ := cmd.Flags().GetInt("limit")
	if search != "" {
		svc.Search(search)
	} else {
		svc.SetQuantity(limit)
	}

	products := svc.Visible()
	if len(products) == 0 {
		fmt.Println("No products found.")
		return nil
	}
	printProducts(products)
	fmt.Printf("%d of %d products shown\n", len(products), len(svc.All()))
	return nil
}

func printProducts(products []domproduct.FinancialProduct) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION\tRELEASE\tREVISION")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Description, p.DateRelease, p.DateRevision)
	}
	_ = w.Flush()
}
