// main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariebrainware/hospital-patient-manager/config"
	"github.com/ariebrainware/hospital-patient-manager/console"
	"github.com/ariebrainware/hospital-patient-manager/endpoint"
	"github.com/ariebrainware/hospital-patient-manager/manager"
	"github.com/ariebrainware/hospital-patient-manager/storage"
	"github.com/ariebrainware/hospital-patient-manager/util"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds what every command needs.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	manager *manager.Manager
}

func newApp(dataFile string) (*app, error) {
	loaded := *config.LoadConfig()
	cfg := &loaded
	if dataFile != "" {
		cfg.DataFile = dataFile
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	util.SetActivityLogger(logger)

	store, err := openStorage(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	m := manager.New(store,
		manager.WithTotalBeds(cfg.TotalBeds),
		manager.WithDailyRate(cfg.DailyRate),
		manager.WithLogger(logger.Named("manager")),
	)
	return &app{cfg: cfg, logger: logger, manager: m}, nil
}

func openStorage(cfg *config.Config, logger *zap.Logger) (storage.Storage, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverJSON:
		return storage.NewJSONStorage(cfg.DataFile, logger.Named("storage")), nil
	case config.StorageDriverMySQL:
		db, err := config.ConnectMySQL()
		if err != nil {
			return nil, err
		}
		if err := util.SetActivityLoggerDB(db); err != nil {
			return nil, fmt.Errorf("migrate activity log: %w", err)
		}
		return storage.NewDBStorage(db, logger.Named("storage"))
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func (a *app) close() {
	_ = a.logger.Sync()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataFile string

	// withApp builds the app for one command run and releases it afterwards.
	withApp := func(run func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			a, err := newApp(dataFile)
			if err != nil {
				return err
			}
			defer a.close()
			return run(cmd, args, a)
		}
	}

	rootCmd := &cobra.Command{
		Use:          "patient-manager",
		Short:        "Hospital patient manager",
		Long:         "Admit, search, update, discharge and bill hospital patients. Without a subcommand the interactive menu starts.",
		SilenceUsage: true,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			return console.New(a.manager, cmd.InOrStdin(), cmd.OutOrStdout()).Run()
		}),
	}
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "", "patient data file (overrides DATAFILE)")

	rootCmd.AddCommand(serveCmd(withApp))
	rootCmd.AddCommand(listCmd(withApp))
	rootCmd.AddCommand(statsCmd(withApp))
	rootCmd.AddCommand(bedsCmd(withApp))
	rootCmd.AddCommand(exportCmd(withApp))
	return rootCmd
}

type appRunner func(run func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error

func serveCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the JSON API server",
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			return runServer(a)
		}),
	}
}

func listCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every patient ordered by ID",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			console.PrintPatients(cmd.OutOrStdout(), a.manager.ListPatients())
			return nil
		}),
	}
}

func statsCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print hospital statistics",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			console.PrintStatistics(cmd.OutOrStdout(), a.manager.GetStatistics())
			return nil
		}),
	}
}

func bedsCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "beds",
		Short: "Print bed availability",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Bed Status: %s\n", a.manager.BedAvailability())
			return nil
		}),
	}
}

func exportCmd(withApp appRunner) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export [filename]",
		Short: "Export every patient to CSV or Parquet",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			filename := manager.DefaultExportFile
			if len(args) == 1 && args[0] != "" {
				filename = args[0]
			}

			var err error
			switch format {
			case endpoint.ExportFormatCSV:
				filename = util.EnsureCSVExtension(filename)
				err = a.manager.ExportCSV(filename)
			case endpoint.ExportFormatParquet:
				filename = util.ReplaceExtension(filename, ".csv", ".parquet")
				err = a.manager.ExportParquetFile(filename)
			default:
				return fmt.Errorf("unknown export format %q", format)
			}
			if err != nil {
				return fmt.Errorf("could not export data to %s: %w", filename, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Data successfully exported to %s\n", filename)
			return nil
		}),
	}
	cmd.Flags().StringVar(&format, "format", endpoint.ExportFormatCSV, "export format: csv or parquet")
	return cmd
}

func runServer(a *app) error {
	gin.SetMode(a.cfg.GinMode)
	router := endpoint.SetupRouter(a.manager, a.cfg)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.cfg.AppPort),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("error starting server: %w", err)
	case <-quit:
	}

	a.logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	a.logger.Info("server stopped")
	return nil
}
