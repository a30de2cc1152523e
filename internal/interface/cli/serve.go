package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	domproduct "example.com/finproducts-admin/internal/domain/product"
	"example.com/finproducts-admin/internal/infra/stubapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local stub of the products API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":3002", "Address to listen on")
	_ = viper.BindPFlag("listen_addr", serveCmd.Flags().Lookup("addr"))
	serveCmd.Flags().Bool("seed", true, "Start with sample products")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := newLogger()

	stub := stubapi.NewServer(logger)
	if seed, _ := cmd.Flags().GetBool("seed"); seed {
		stub.Seed(sampleProducts())
	}

	addr := viper.GetString("listen_addr")
	srv := &http.Server{Addr: addr, Handler: stub}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("stub API listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	logger.Info("stub API stopped")
	return nil
}

func sampleProducts() []domproduct.FinancialProduct {
	release := domproduct.Today(time.Now())
	revision := release.AddYears(1)
	return []domproduct.FinancialProduct{
		{
			ID:           "trj-crd",
			Name:         "Tarjeta de crédito",
			Description:  "Tarjeta de consumo con cashback",
			Logo:         "https://example.com/logos/trj-crd.png",
			DateRelease:  release,
			DateRevision: revision,
		},
		{
			ID:           "cta-aho",
			Name:         "Cuenta de ahorro",
			Description:  "Cuenta sin costo de apertura ni mantenimiento",
			Logo:         "https://example.com/logos/cta-aho.png",
			DateRelease:  release,
			DateRevision: revision,
		},
		{
			ID:           "fnd-inv",
			Name:         "Fondo de inversión",
			Description:  "Fondo de renta fija de riesgo moderado",
			Logo:         "https://example.com/logos/fnd-inv.png",
			DateRelease:  release,
			DateRevision: revision,
		},
	}
}
