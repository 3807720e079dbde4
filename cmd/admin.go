// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"vidadeus/cli/internal/api"
	"vidadeus/cli/internal/dbstats"
	"vidadeus/cli/internal/keychain"
	"vidadeus/cli/internal/session"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var adminTopTables int

// adminCmd groups the platform administration subcommands. The backend
// enforces the admin role; non-admin accounts get a 403.
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Platform administration",
	Long: `The admin command exposes the platform administration surface: storage
and growth metrics, ETL pipeline runs, and operational alerts. The 'db'
subcommand inspects the PostgreSQL database directly using the connection
configured with 'vida connect-db'.

These commands require an account with the admin role.`,
}

var adminStorageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Show database storage metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		mgr, client, ok, err := requireAuth(ctx)
		if err != nil || !ok {
			return err
		}

		m, err := client.StorageMetrics(ctx)
		if err != nil {
			return adminError(mgr, client, err)
		}

		rows := pterm.TableData{
			{"Used", fmt.Sprintf("%.2f GB (%s)", m.UsedGB, dbstats.FormatBytes(m.UsedBytes))},
			{"Total", fmt.Sprintf("%.2f GB (%s)", m.TotalGB, dbstats.FormatBytes(m.TotalBytes))},
			{"Usage", fmt.Sprintf("%.1f%%", m.UsagePercent)},
			{"Free", fmt.Sprintf("%.1f%%", m.FreePercent)},
		}
		if err := pterm.DefaultTable.WithData(rows).Render(); err != nil {
			return fmt.Errorf("render storage table: %w", err)
		}
		return nil
	},
}

var adminGrowthCmd = &cobra.Command{
	Use:   "growth",
	Short: "Show weekly storage growth",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		mgr, client, ok, err := requireAuth(ctx)
		if err != nil || !ok {
			return err
		}

		g, err := client.GrowthMetrics(ctx)
		if err != nil {
			return adminError(mgr, client, err)
		}

		pterm.Printf("Weekly growth: %s (%s GB)\n\n", g.Percentage, g.GrowthGB)
		if len(g.History) == 0 {
			return nil
		}
		bars := make([]pterm.Bar, 0, len(g.History))
		for _, day := range g.History {
			bars = append(bars, pterm.Bar{
				Label: day.Day,
				Value: int(day.ValueGB * 100),
			})
		}
		return pterm.DefaultBarChart.WithHorizontal().WithShowValue().WithBars(bars).Render()
	},
}

var adminETLCmd = &cobra.Command{
	Use:   "etl",
	Short: "List recent ETL pipeline runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		mgr, client, ok, err := requireAuth(ctx)
		if err != nil || !ok {
			return err
		}

		runs, err := client.ETLRuns(ctx)
		if err != nil {
			return adminError(mgr, client, err)
		}
		if len(runs.Runs) == 0 {
			pterm.Println("No pipeline runs recorded.")
			return nil
		}

		rows := pterm.TableData{{"ID", "Name", "Status", "Started", "Duration", "Error"}}
		for _, run := range runs.Runs {
			errMsg := ""
			if run.Error != nil {
				errMsg = *run.Error
			}
			rows = append(rows, []string{run.ID, run.Name, etlStatus(run.Status), run.StartedAt, run.Duration, errMsg})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
			return fmt.Errorf("render etl table: %w", err)
		}
		return nil
	},
}

var adminETLRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Trigger an ETL pipeline run",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		mgr, client, ok, err := requireAuth(ctx)
		if err != nil || !ok {
			return err
		}

		stopSpinner := startInlineSpinner(os.Stdout, "Starting pipeline")
		out, err := client.ExecuteETL(ctx)
		stopSpinner()
		if err != nil {
			return adminError(mgr, client, err)
		}
		fmt.Printf("🚀 %s (run %s, status %s)\n", out.Message, out.RunID, out.Status)
		return nil
	},
}

var adminAlertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "List active operational alerts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		mgr, client, ok, err := requireAuth(ctx)
		if err != nil || !ok {
			return err
		}

		alerts, err := client.Alerts(ctx)
		if err != nil {
			return adminError(mgr, client, err)
		}
		if len(alerts.Alerts) == 0 {
			pterm.Println("✅ No active alerts")
			return nil
		}
		for _, a := range alerts.Alerts {
			pterm.Printf("%s %s — %s\n", alertBadge(a.Level), a.Title, a.Subtitle)
			pterm.Println(pterm.Gray("   " + a.TriggeredAt))
		}
		return nil
	},
}

// adminDBCmd inspects the database directly instead of going through the
// backend's metrics endpoints.
var adminDBCmd = &cobra.Command{
	Use:   "db",
	Short: "Inspect the PostgreSQL database directly",
	Long: `The db subcommand connects straight to PostgreSQL using the DSN stored
by 'vida connect-db' and reports database size, active connections and the
largest tables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, ok, err := requireAuth(cmd.Context())
		if err != nil || !ok {
			return err
		}

		km, err := keychain.GetManager()
		if err != nil {
			fmt.Println("❌ Secure storage is not available on this system")
			return err
		}
		dsn, err := km.LoadDBDSN()
		if err != nil || strings.TrimSpace(dsn) == "" {
			fmt.Println("⚠️  No database connection configured")
			fmt.Println("   Please run: vida connect-db")
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		stopSpinner := startInlineSpinner(os.Stdout, "Collecting database statistics")
		pool, err := dbstats.Connect(ctx, dsn)
		if err != nil {
			stopSpinner()
			fmt.Println("Connection failed. Please check your database credentials and network connection.")
			return err
		}
		defer pool.Close()

		report, err := dbstats.Collect(ctx, pool, adminTopTables)
		stopSpinner()
		if err != nil {
			return err
		}

		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Database: "+report.Database)).
			WithPadding(1).
			Printfln("Size: %s (%.2f GB)\nActive connections: %d\nCollected: %s",
				dbstats.FormatBytes(report.DatabaseBytes), report.DatabaseGB(),
				report.Connections, report.CollectedAt.Format(time.RFC3339))
		pterm.Println()

		if len(report.Tables) == 0 {
			pterm.Println("No user tables found.")
			return nil
		}
		rows := pterm.TableData{{"Schema", "Table", "Size"}}
		for _, t := range report.Tables {
			rows = append(rows, []string{t.Schema, t.Name, dbstats.FormatBytes(t.TotalBytes)})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
			return fmt.Errorf("render table sizes: %w", err)
		}
		return nil
	},
}

// adminError prints a friendly message for role failures and defers the rest
// to the shared network error formatting.
func adminError(mgr *session.Manager, client *api.Client, err error) error {
	if api.IsStatus(err, 403) {
		fmt.Println("❌ This command requires an admin account")
		return nil
	}
	return presentAPIError(mgr, client, err)
}

func etlStatus(status string) string {
	switch status {
	case "success":
		return pterm.Green(status)
	case "failed":
		return pterm.Red(status)
	case "running":
		return pterm.Cyan(status)
	default:
		return status
	}
}

func alertBadge(level string) string {
	switch level {
	case "critical", "error":
		return pterm.Red("●")
	case "warning":
		return pterm.Yellow("●")
	default:
		return pterm.Cyan("●")
	}
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminStorageCmd, adminGrowthCmd, adminETLCmd, adminAlertsCmd, adminDBCmd)
	adminETLCmd.AddCommand(adminETLRunCmd)
	adminDBCmd.Flags().IntVar(&adminTopTables, "top", 10, "Number of largest tables to show")
}
