// Command multimodal-cli sends text, image, audio and video payloads to a
// hosted multimodal model and prints the response.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Ingenimax/multimodal-go/pkg/config"
	"github.com/Ingenimax/multimodal-go/pkg/interfaces"
	"github.com/Ingenimax/multimodal-go/pkg/llm"
	"github.com/Ingenimax/multimodal-go/pkg/logging"
	"github.com/Ingenimax/multimodal-go/pkg/storage"
	"github.com/Ingenimax/multimodal-go/pkg/tracing"

	// Register storage backends
	_ "github.com/Ingenimax/multimodal-go/pkg/storage/gcs"
	_ "github.com/Ingenimax/multimodal-go/pkg/storage/local"
)

const rootLongDesc string = `Send multimodal payloads to a hosted model.

Each command builds one ordered message from text, remote image URLs and
local media files, submits it to the configured provider and prints the
response. Provider, models and storage are configured through a config
file or MULTIMODAL_* environment variables.

Examples:
  multimodal-cli text "Summarize the key features of multimodal AI systems."
  multimodal-cli image --url https://example.com/photo.jpg
  multimodal-cli audio --file meeting.mp3
  multimodal-cli inspect --image site.jpg --audio notes.wav`

// clientFactory builds the model client for a provider configuration
type clientFactory func(ctx context.Context, cfg config.ProviderConfig, logger logging.Logger) (interfaces.ModelClient, error)

// app holds the state shared by every command
type app struct {
	configFile string
	logLevel   string

	newClient clientFactory

	cfg      *config.Config
	logger   logging.Logger
	client   interfaces.ModelClient
	source   storage.Source
	shutdown func(context.Context) error
}

func newApp() *app {
	return &app{newClient: llm.New}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp()
	err := newRootCmd(a).ExecuteContext(ctx)
	if cerr := a.close(context.Background()); cerr != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to flush traces: %v\n", cerr)
	}
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "multimodal-cli",
		Short:        "Send multimodal payloads to a hosted model",
		Long:         rootLongDesc,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			return a.init(cmd.Context())
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "Path to a config file (yaml, json or toml)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	cmd.AddCommand(
		newTextCmd(a),
		newImageCmd(a),
		newAudioCmd(a),
		newVideoCmd(a),
		newInspectCmd(a),
	)

	return cmd
}

// init loads configuration and builds the logger, client and storage source
func (a *app) init(ctx context.Context) error {
	var opts []config.LoadOption
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg
	logOpts := []logging.Option{logging.WithLevel(cfg.LogLevel), logging.WithOutput(os.Stderr)}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		logOpts = append(logOpts, logging.WithConsole())
	}
	a.logger = logging.New(logOpts...)

	client, err := a.newClient(ctx, cfg.Provider, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.NewTracerProvider(ctx, tracing.Config{
			Exporter:    cfg.Tracing.Exporter,
			Endpoint:    cfg.Tracing.Endpoint,
			Insecure:    cfg.Tracing.Insecure,
			ServiceName: cfg.Tracing.ServiceName,
		})
		if err != nil {
			return err
		}
		a.shutdown = tp.Shutdown
		client = tracing.NewOTELModelMiddleware(client, tp.Tracer("github.com/Ingenimax/multimodal-go"))
	}
	a.client = client

	source, err := storage.NewSourceFromConfig(ctx, storage.Config{
		Type:  cfg.Storage.Type,
		Local: storage.LocalConfig{Root: cfg.Storage.Local.Root},
		GCS: storage.GCSConfig{
			Bucket:          cfg.Storage.GCS.Bucket,
			Prefix:          cfg.Storage.GCS.Prefix,
			CredentialsFile: cfg.Storage.GCS.CredentialsFile,
			CredentialsJSON: cfg.Storage.GCS.CredentialsJSON,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create storage source: %w", err)
	}
	a.source = source

	a.logger.Debug(ctx, "Initialized", map[string]interface{}{
		"provider": client.Name(),
		"storage":  source.Name(),
		"tracing":  cfg.Tracing.Enabled,
	})
	return nil
}

func (a *app) close(ctx context.Context) error {
	if a.shutdown == nil {
		return nil
	}
	return a.shutdown(ctx)
}
