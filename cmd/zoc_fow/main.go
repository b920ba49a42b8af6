package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reverendhomer/zoc/internal/api"
	"github.com/reverendhomer/zoc/internal/config"
	"github.com/reverendhomer/zoc/internal/dispatcher"
	"github.com/reverendhomer/zoc/internal/eventsource"
	"github.com/reverendhomer/zoc/internal/logging"
	intOtel "github.com/reverendhomer/zoc/internal/otel"
	"github.com/reverendhomer/zoc/internal/scenario"
	"github.com/reverendhomer/zoc/internal/session"
	"github.com/reverendhomer/zoc/internal/storage"
	"github.com/reverendhomer/zoc/internal/worker"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.0.1"
	BuildDate      string = "unknown"

	AppName string = "zoc_fow"
)

var (
	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// OTelProvider handles OpenTelemetry
	OTelProvider *intOtel.Provider

	SessionStartTime time.Time = time.Now()
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "zoc_fow:", err)
		os.Exit(1)
	}
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(AppName, pflag.ContinueOnError)
	fs.String("config-dir", ".", "directory containing "+config.ConfigFileName)
	fs.StringP("scenario", "s", "", "scenario file (map, unit types, initial units, events)")
	fs.String("log-level", "", "log level (DEBUG, INFO, WARN, ERROR)")
	fs.String("storage", "", "storage backend: memory, sqlite, postgres or influx")
	fs.Bool("kafka", false, "consume events from kafka instead of the scenario's event list")
	fs.Bool("publish", false, "publish the scenario's events to kafka and exit")
	fs.Bool("render", true, "print every player's fog map when done")
	fs.Bool("sequential", false, "apply events to the players' fog maps one at a time")
	return fs
}

// bindFlags overrides config values with the flags that were set explicitly.
func bindFlags(fs *pflag.FlagSet) {
	bind := map[string]string{
		"log-level": "logLevel",
		"storage":   "storage.type",
		"kafka":     "kafka.enabled",
	}
	for flag, key := range bind {
		if fs.Changed(flag) {
			_ = viper.BindPFlag(key, fs.Lookup(flag))
		}
	}
	if fs.Changed("sequential") {
		seq, _ := fs.GetBool("sequential")
		viper.Set("fow.parallel", !seq)
	}
}

func run(args []string) error {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}

	// bootstrap logger until the config is read
	SlogManager = logging.NewSlogManager()
	SlogManager.Setup(nil, "INFO", nil)
	Logger = SlogManager.Logger()

	configDir, _ := fs.GetString("config-dir")
	if err := config.Load(configDir); err != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	} else {
		Logger.Info("Loaded config", "dir", configDir)
	}
	bindFlags(fs)

	scenarioPath, _ := fs.GetString("scenario")
	if scenarioPath == "" {
		return errors.New("--scenario is required")
	}
	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		return err
	}

	if publish, _ := fs.GetBool("publish"); publish {
		return publishScenario(sc)
	}

	logFile, closeLog, err := openLogFile()
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := sc.NewSession()
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}

	if err := setupTelemetry(logFile, st); err != nil {
		return err
	}
	defer shutdownTelemetry()

	Logger.Info("Starting up...", "version", CurrentVersion, "build", BuildDate,
		"scenario", sc.Name, "session", st.Info().ID)

	backend, err := storage.NewBackend(config.GetStorageConfig(), Logger)
	if err != nil {
		return err
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			Logger.Error("Failed to close storage backend", "error", err)
		}
	}()

	d, err := dispatcher.New(Logger)
	if err != nil {
		return err
	}
	mgr, err := worker.NewManager(worker.Dependencies{
		Session:  st,
		Backend:  backend,
		Logger:   Logger,
		Parallel: viper.GetBool("fow.parallel"),
	})
	if err != nil {
		return err
	}
	mgr.RegisterHandlers(d)
	if err := mgr.Start(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, closeSrc := eventSource(sc)
	defer closeSrc()

	runErr := src.Run(ctx, mgr.Process)
	if runErr != nil {
		Logger.Error("Event processing stopped", "error", runErr)
	}
	if err := mgr.Stop(); err != nil {
		Logger.Error("Failed to end session", "error", err)
		runErr = errors.Join(runErr, err)
	}
	if exp, ok := backend.(storage.Exportable); ok && exp.GetExportedFilePath() != "" {
		Logger.Info("Session exported", "path", exp.GetExportedFilePath())
		uploadExport(exp.GetExportedFilePath(), st)
	}

	if render, _ := fs.GetBool("render"); render {
		printFogMaps(os.Stdout, mgr)
	}
	return runErr
}

func openLogFile() (*os.File, func(), error) {
	f, path, err := logging.OpenLogFile(viper.GetString("logsDir"), AppName, SessionStartTime)
	if err != nil {
		return nil, nil, err
	}
	Logger.Info("Begin logging in logs directory", "path", path)
	return f, func() { _ = f.Close() }, nil
}

// setupTelemetry switches logging to the log file, optionally bridged to OTel.
// Every record carries the current turn and active player.
func setupTelemetry(logFile *os.File, st *session.Context) error {
	otelCfg := config.GetOTelConfig()
	var err error
	OTelProvider, err = intOtel.New(intOtel.ConfigFrom(otelCfg, logFile))
	if err != nil {
		return fmt.Errorf("init otel: %w", err)
	}

	var otelLogProvider *sdklog.LoggerProvider
	if OTelProvider.Enabled() {
		otelLogProvider = OTelProvider.LoggerProvider()
		// dispatcher and worker instruments resolve against the global provider
		otel.SetMeterProvider(OTelProvider.MeterProvider())
	}
	SlogManager.Setup(logFile, viper.GetString("logLevel"), otelLogProvider,
		logging.WithState(func() []slog.Attr {
			return []slog.Attr{
				slog.Int("turn", st.Turn()),
				slog.Int("activePlayer", int(st.ActivePlayer())),
			}
		}))
	Logger = SlogManager.Logger()
	return nil
}

func shutdownTelemetry() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := SlogManager.Flush(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "flush logs:", err)
	}
	if OTelProvider != nil {
		if err := OTelProvider.Shutdown(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "otel shutdown:", err)
		}
	}
}

func eventSource(sc *scenario.Scenario) (eventsource.Source, func()) {
	kc := config.GetKafkaConfig()
	if !kc.Enabled {
		Logger.Info("Replaying scenario events", "count", len(sc.Events))
		return eventsource.NewStatic(sc.Events), func() {}
	}
	Logger.Info("Consuming events from kafka", "brokers", kc.Brokers, "topic", kc.Topic, "group", kc.GroupID)
	k := eventsource.NewKafka(kc, Logger)
	return k, func() {
		if err := k.Close(); err != nil {
			Logger.Warn("Failed to close kafka reader", "error", err)
		}
	}
}

// uploadExport sends the exported session to the replay server when enabled.
// Failures are logged; the local file stays in place.
func uploadExport(path string, st *session.Context) {
	ac := config.GetAPIConfig()
	if !ac.Upload {
		return
	}
	client := api.New(ac.ServerURL, ac.APIKey)
	if err := client.Healthcheck(); err != nil {
		Logger.Warn("Replay server unreachable, skipping upload", "url", ac.ServerURL, "error", err)
		return
	}
	info := st.Info()
	err := client.Upload(path, api.UploadMetadata{
		SessionID:   info.ID,
		SessionName: info.Name,
		Players:     len(info.Players),
		Turns:       st.Turn(),
	})
	if err != nil {
		Logger.Error("Failed to upload session", "path", path, "error", err)
		return
	}
	Logger.Info("Uploaded session", "url", ac.ServerURL, "path", path)
}

func publishScenario(sc *scenario.Scenario) error {
	kc := config.GetKafkaConfig()
	p := eventsource.NewPublisher(kc)
	defer func() { _ = p.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := p.Publish(ctx, sc.Name, sc.Events); err != nil {
		return err
	}
	Logger.Info("Published scenario events", "topic", kc.Topic, "count", len(sc.Events))
	return nil
}
