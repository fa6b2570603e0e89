package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/willfong/mockbank/internal/config"
	"github.com/willfong/mockbank/internal/data"
	"github.com/willfong/mockbank/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tools over HTTP",
	Long: `Start an HTTP server exposing the tool registry.

Routes:
  GET  /healthz        liveness
  GET  /tools          tool definitions with input schemas
  POST /tools/:name    call a tool; the body is the JSON arguments
  GET  /statistics     ledger statistics
  POST /snapshot       persist the current ledger

POST /snapshot writes to the SQL database when --dsn (database.dsn) is set,
otherwise to the --db snapshot file. The server runs until interrupted.

Example:
  mockbank serve --addr 0.0.0.0:8080 --db bank.json --save`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", config.DefaultServerAddr, "listen address")
	serveCmd.Flags().String("dsn", "", "SQL database for POST /snapshot (overrides the snapshot file)")
	serveCmd.Flags().String("driver", config.DefaultDriver, "SQL driver: sqlite or mysql")
	serveCmd.Flags().Bool("save", false, "write the ledger back to --db on shutdown")
}

func runServe(cmd *cobra.Command, args []string) error {
	u := newUI(cmd)

	reg, err := openRegistry()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sink, closeSink, err := snapshotSink(ctx)
	if err != nil {
		return err
	}
	defer closeSink()

	u.Println(u.Header("mockbank tool server"))
	u.Println()
	u.Println(u.KeyValue("Address", "http://"+appCfg.Server.Addr))
	u.Println(u.KeyValue("Tools", fmt.Sprintf("%d", len(reg.Definitions()))))
	u.Println(u.KeyValue("Snapshots", sinkName(sink)))
	u.Println()

	srv := server.New(appCfg.Server, reg, sink, logger.Named("server"))
	if err := srv.Run(ctx); err != nil {
		u.Println(u.Error(err.Error()))
		return err
	}
	u.Println(u.Warning("Server stopped"))

	if appCfg.Ledger.SaveOnExit {
		if err := saveEngine(reg.Engine()); err != nil {
			return err
		}
		u.Println(u.Success("Ledger saved to " + appCfg.Ledger.DBPath))
	}
	return nil
}

// snapshotSink picks where POST /snapshot writes: the SQL database when a
// DSN is configured, else the snapshot file, else nowhere.
func snapshotSink(ctx context.Context) (server.Sink, func(), error) {
	if appCfg.Database.DSN != "" {
		q, closeFn, err := openQueries(ctx)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("snapshots go to database", zap.String("driver", appCfg.Database.Driver))
		return q, closeFn, nil
	}
	if appCfg.Ledger.DBPath != "" {
		return data.FileSink{Path: appCfg.Ledger.DBPath}, func() {}, nil
	}
	return nil, func() {}, nil
}

func sinkName(sink server.Sink) string {
	switch s := sink.(type) {
	case nil:
		return "disabled"
	case data.FileSink:
		return s.Path
	default:
		return appCfg.Database.Driver + " database"
	}
}
