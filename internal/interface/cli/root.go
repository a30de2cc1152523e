package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"example.com/finproducts-admin/internal/infra/gateway"
)

var rootCmd = &cobra.Command{
	Use:           "finproducts",
	Short:         "Admin tool for the financial products catalog",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().String("api-url", "http://localhost:3002", "Base URL of the products API")
	_ = viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))
}

func initConfig() {
	viper.SetEnvPrefix("FINPRODUCTS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("uniqueness_debounce", "300ms")
	viper.SetDefault("http_timeout", "10s")
	viper.SetDefault("listen_addr", ":3002")
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("log_format", "text")
}

func newLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(viper.GetString("log_level")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if viper.GetString("log_format") == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func newGateway(logger *slog.Logger) *gateway.Client {
	httpClient := &http.Client{Timeout: viper.GetDuration("http_timeout")}
	return gateway.NewClient(viper.GetString("api_url"), httpClient, logger)
}

// stdoutNotifier plays the role of the browser alert.
type stdoutNotifier struct{}

func (stdoutNotifier) Notify(message string) {
	fmt.Println(message)
}
