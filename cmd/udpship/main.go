package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/udpship/internal/cliconfig"
	"github.com/bft-labs/udpship/internal/spool"
	"github.com/bft-labs/udpship/pkg/log"
	"github.com/bft-labs/udpship/pkg/sender"
)

const longHelp = `
Push InfluxDB line protocol to a collector over UDP.

Payloads larger than the chunk size are split into several datagrams at line
boundaries; a record is never split. Delivery is fire-and-forget: socket and
send failures are logged at debug level and never fail the command.
`

var exampleUsage = strings.TrimSpace(`
  udpship send --host influx.internal --port 8089 metrics.lp
  cat metrics.lp | udpship send
  udpship watch --spool-dir /var/spool/udpship
  udpship watch --config $HOME/.udpship/config.toml --once
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger := cliconfig.Logger()
		logger.Error().Err(err).Msg("udpship")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath, separator string

	root := &cobra.Command{
		Use:           "udpship",
		Short:         "Push InfluxDB line protocol to a collector over UDP",
		Long:          strings.TrimSpace(longHelp),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
			if changed["line-separator"] {
				sep, err := cliconfig.ParseSeparator(separator)
				if err != nil {
					return err
				}
				cfg.LineSeparator = sep
			}
			return loadConfig(&cfg, cfgPath, changed)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.udpship/config.toml)")
	flags.StringVar(&cfg.Host, "host", cfg.Host, "collector host")
	flags.IntVar(&cfg.Port, "port", cfg.Port, "collector UDP port")
	flags.IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "target maximum datagram payload in bytes")
	flags.StringVar(&separator, "line-separator", `\n`, "record delimiter; escapes such as \\r\\n are interpreted")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(newSendCmd(&cfg), newWatchCmd(&cfg))
	return root
}

// loadConfig applies the config file and environment below explicitly set
// flags, then validates the result.
func loadConfig(cfg *cliconfig.Config, cfgPath string, changed map[string]bool) error {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return fmt.Errorf("apply config file: %w", err)
		}
	} else if cfgPath != "" {
		return fmt.Errorf("config file %s not found", cfgPath)
	}

	if err := cliconfig.ApplyEnvConfig(cfg, changed); err != nil {
		return fmt.Errorf("apply env: %w", err)
	}
	if err := cliconfig.SetLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	return cfg.Validate()
}

func newSender(cfg *cliconfig.Config) *sender.UDPSender {
	logger := cliconfig.Logger()
	ep := cfg.Endpoint()
	return sender.NewUDPSender(ep.Host, ep.Port,
		sender.WithChunkSize(cfg.ChunkSize),
		sender.WithLineSeparator(cfg.LineSeparator),
		sender.WithLogger(log.NewZerologAdapterWithLogger(logger)),
	)
}

func newSendCmd(cfg *cliconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "send [file...]",
		Short: "Send line-protocol files (or stdin) as UDP datagrams",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSender(cfg)
			defer s.Close()
			return sendFiles(s, cmd.InOrStdin(), args, cliconfig.Logger())
		},
	}
}

// sendFiles writes each named file, or in when no names are given or a
// name is "-".
func sendFiles(s sender.Sender, in io.Reader, names []string, logger zerolog.Logger) error {
	if len(names) == 0 {
		names = []string{"-"}
	}

	for _, name := range names {
		var data []byte
		var err error
		if name == "-" {
			data, err = io.ReadAll(in)
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		s.Write(string(data))
		logger.Debug().Str("source", name).Int("bytes", len(data)).Msg("dispatched")
	}
	return nil
}

func newWatchCmd(cfg *cliconfig.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Ship *.lp files dropped into a spool directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.SpoolDir == "" {
				return fmt.Errorf("spool-dir is required")
			}

			logger := cliconfig.Logger()
			s := newSender(cfg)
			defer s.Close()

			w := spool.New(spool.Config{
				Dir:       cfg.SpoolDir,
				Debounce:  cfg.Debounce,
				KeepFiles: cfg.KeepFiles,
			}, s, log.NewZerologAdapterWithLogger(logger))

			if cfg.Once {
				n, err := w.Flush()
				if err != nil {
					return err
				}
				logger.Info().Int("files", n).Msg("flushed spool directory")
				return nil
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := w.Run(ctx); err != nil {
				return fmt.Errorf("watch: %w", err)
			}
			logger.Info().Msg("received signal, stopping...")
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.SpoolDir, "spool-dir", cfg.SpoolDir, "directory to watch for *.lp files")
	cmd.Flags().BoolVar(&cfg.KeepFiles, "keep-files", cfg.KeepFiles, "keep files after shipping")
	cmd.Flags().DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "delay after the last change before a file is shipped")
	cmd.Flags().BoolVar(&cfg.Once, "once", cfg.Once, "ship files already present and exit")
	return cmd
}
