package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BielosX/wombat/pokedex/src/config"
	"github.com/BielosX/wombat/pokedex/src/export"
	"github.com/BielosX/wombat/pokedex/src/logging"
	"github.com/BielosX/wombat/pokedex/src/pokeapi"
	"github.com/BielosX/wombat/pokedex/src/s3"
)

var (
	configPath string
	verbose    bool

	cfg   config.Config
	sugar *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "pokedex",
	Short: "Browse and export PokeAPI creatures",
	Long: `pokedex renders the PokeAPI creature list and detail pages.

Serve them over HTTP, browse them in the terminal, or export a page
of creatures to Parquet and CSV.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		// The terminal browser owns the screen; log nowhere unless asked.
		if cmd == browseCmd && logFile == "" {
			sugar = zap.NewNop().Sugar()
			return nil
		}
		sugar, err = logging.New(logging.Options{
			Level:       cfg.Logging.Level,
			Development: cfg.Logging.Development,
			OutputPath:  logFile,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		syncLogger()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(serveCmd, browseCmd, exportCmd)
}

func syncLogger() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}

func newPokeAPIClient(cfg config.Config, sugar *zap.SugaredLogger) *pokeapi.Client {
	opts := []pokeapi.Option{
		pokeapi.WithBaseUrl(cfg.API.BaseURL),
		pokeapi.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
	}
	if cfg.API.CacheTTL > 0 {
		opts = append(opts, pokeapi.WithCache(pokeapi.NewCache(cfg.API.CacheTTL)))
	}
	return pokeapi.NewClient(sugar, opts...)
}

func newS3Client(ctx context.Context, cfg config.Config) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Export.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load SDK config: %w", err)
	}
	return s3.NewClient(awsCfg), nil
}

// runLambda serves one of the export handlers, picked by _HANDLER.
func runLambda(handler string) {
	var err error
	cfg, err = config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	sugar, err = logging.New(logging.Options{Level: cfg.Logging.Level, Development: cfg.Logging.Development})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer syncLogger()

	s3Client, err := newS3Client(context.Background(), cfg)
	if err != nil {
		sugar.Fatal(err)
	}
	exporter := export.NewExporter(newPokeAPIClient(cfg, sugar), export.NewS3Store(s3Client, cfg.Export.Bucket), sugar)
	handlers := export.NewHandlers(exporter, sugar)
	switch handler {
	case "exporter", "scraper":
		if cfg.Export.Bucket == "" {
			sugar.Fatal("BUCKET_NAME is required")
		}
		lambda.Start(handlers.Export)
	case "scheduler":
		lambda.Start(handlers.Schedule)
	default:
		sugar.Fatalf("Unknown Handler %s", handler)
	}
}

func main() {
	if handler := os.Getenv("_HANDLER"); handler != "" {
		runLambda(handler)
		return
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
