package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	deletionuc "example.com/finproducts-admin/internal/usecase/deletion"
	listuc "example.com/finproducts-admin/internal/usecase/list"
)

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a product after confirmation",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolP("yes", "y", false, "Confirm without prompting")
}

func runDelete(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	gw := newGateway(logger)
	id := args[0]

	p, err := gw.GetByID(cmd.Context(), id)
	if err != nil {
		return err
	}

	lst := listuc.NewService(gw, logger)
	if err := lst.Load(cmd.Context()); err != nil {
		return err
	}

	wf := deletionuc.NewService(gw, lst, stdoutNotifier{}, logger)
	wf.Request(p.ID, p.Name)

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes && !promptConfirm(p.Name) {
		wf.Cancel()
		fmt.Println("Cancelled.")
		return nil
	}

	return wf.Confirm(cmd.Context())
}

func promptConfirm(name string) bool {
	fmt.Printf("Delete product %q? [y/N]: ", name)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
