package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/willfong/mockbank/internal/config"
	"github.com/willfong/mockbank/internal/simulator"
	"github.com/willfong/mockbank/internal/ui"
)

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a concurrent workload against the ledger",
	Long: `Drive the ledger with concurrent workers performing random reads,
deposits, withdrawals, transfers, loan and card payments and freezes.

Rejections (insufficient funds, frozen accounts, ...) are expected and
counted by class. When the workers finish the ledger is audited; any broken
invariant fails the command.

The read/write ratio and the write mix come from the simulate section of the
config file (or MOCKBANK_SIMULATE_* variables).

Example:
  mockbank simulate
  mockbank simulate --workers 32 --operations 2000 --seed 42
  mockbank simulate --db bank.json --save`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().Int("workers", config.DefaultWorkers, "number of concurrent workers")
	simulateCmd.Flags().Int("operations", config.DefaultOperations, "operations per worker")
	simulateCmd.Flags().Int64("seed", 0, "random seed for reproducibility (0 = random)")
	simulateCmd.Flags().Duration("think-time", 0, "pause between a worker's operations")
	simulateCmd.Flags().Bool("save", false, "write the ledger back to --db after a clean run")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	u := newUI(cmd)
	cfg := appCfg.Simulate

	e, err := openEngine()
	if err != nil {
		return err
	}

	u.Println(u.Header("mockbank workload simulator"))
	u.Println()
	u.Println(u.KeyValue("Workers", fmt.Sprintf("%d", cfg.Workers)))
	u.Println(u.KeyValue("Operations", fmt.Sprintf("%d per worker", cfg.Operations)))
	u.Println(u.KeyValue("R/W Ratio", fmt.Sprintf("%.1f:1", cfg.ReadWriteRatio)))
	u.Println(u.KeyValue("Write Mix", fmt.Sprintf("dep %.0f%% / wd %.0f%% / xfer %.0f%% / loan %.0f%% / card %.0f%% / freeze %.0f%%",
		pct(cfg.Mix.Deposit, cfg.Mix), pct(cfg.Mix.Withdrawal, cfg.Mix), pct(cfg.Mix.Transfer, cfg.Mix),
		pct(cfg.Mix.LoanPayment, cfg.Mix), pct(cfg.Mix.CardPayment, cfg.Mix), pct(cfg.Mix.Freeze, cfg.Mix))))
	if cfg.Seed != 0 {
		u.Println(u.KeyValue("Seed", fmt.Sprintf("%d", cfg.Seed)))
	}
	u.Println()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bar := u.NewProgressBar("Operations", int64(cfg.Workers)*int64(cfg.Operations))
	report, err := simulator.Run(ctx, e, cfg, simulator.Options{
		Logger:   logger.Named("simulator"),
		Progress: bar.Update,
	})
	if report == nil {
		bar.Fail(err)
		return err
	}
	if err != nil {
		bar.Fail(err)
	} else {
		bar.Complete()
	}

	logger.Info("simulation finished",
		zap.String("run_id", report.RunID),
		zap.String("metrics", report.Metrics.FormatMetricsLine()))
	printReport(u, report)

	if err != nil {
		return err
	}

	if appCfg.Ledger.SaveOnExit {
		if err := saveEngine(e); err != nil {
			return err
		}
		u.Println(u.Success("Ledger saved to " + appCfg.Ledger.DBPath))
	}
	return nil
}

func printReport(u *ui.UI, r *simulator.Report) {
	m := r.Metrics
	status := "clean"
	if len(r.Violations) > 0 {
		status = fmt.Sprintf("failed (%d violations)", len(r.Violations))
	}

	u.Println(u.SummaryBox("Simulation Complete", []ui.KV{
		{Key: "Run ID", Value: r.RunID},
		{Key: "Seed", Value: fmt.Sprintf("%d", r.Seed)},
		{Key: "Operations", Value: fmt.Sprintf("%d (R:%d W:%d)", m.TotalOperations, m.ReadOps, m.WriteOps)},
		{Key: "Rejected", Value: fmt.Sprintf("%d", m.Rejected)},
		{Key: "Elapsed", Value: m.Elapsed.Round(time.Millisecond).String()},
		{Key: "Throughput", Value: fmt.Sprintf("%.0f ops/s", m.TPS)},
		{Key: "Latency", Value: fmt.Sprintf("avg %s / p95 %s / p99 %s",
			m.AvgLatency.Round(time.Microsecond), m.P95Latency.Round(time.Microsecond), m.P99Latency.Round(time.Microsecond))},
		{Key: "Status", Value: status},
	}))
	u.Println()

	var rows [][]string
	for _, op := range simulator.AllOperations {
		stat := m.OperationStats[op]
		if stat.Count == 0 {
			continue
		}
		rows = append(rows, []string{
			string(op),
			fmt.Sprintf("%d", stat.Count),
			fmt.Sprintf("%d", stat.Rejected),
			stat.AvgLatency.Round(time.Microsecond).String(),
			stat.P95Latency.Round(time.Microsecond).String(),
		})
	}
	u.Println(u.Table([]string{"OPERATION", "COUNT", "REJECTED", "AVG", "P95"}, rows))

	for _, stat := range m.TopErrors {
		u.Println(u.TableRow(string(stat.Type), fmt.Sprintf("%d", stat.Count), ui.StatusNone))
	}
	for _, v := range r.Violations {
		u.Println(u.TableRow(string(v.Kind), v.String(), ui.StatusError))
	}
}

func pct(w float64, mix config.OperationMix) float64 {
	total := mix.Total()
	if total <= 0 {
		return 0
	}
	return w / total * 100
}
