package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"bloodtool/internal/config"
	"bloodtool/internal/logging"
	"bloodtool/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var showIDs bool

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Print the accepted conflict assessments",
	Args:  cobra.NoArgs,
	RunE:  runEntries,
}

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write the accepted conflict assessments to a JSON file",
	Long: `Writes the accepted conflict assessments as a JSON array.

The file defaults to storage.export_file, resolved against the workspace.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show workspace, storage and record counts",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	entriesCmd.Flags().BoolVar(&showIDs, "ids", false, "List entry IDs and acceptance times (sqlite driver)")
}

func runEntries(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if showIDs {
		sq, ok := s.(*store.SQLiteStore)
		if !ok {
			return fmt.Errorf("--ids requires the %s storage driver", config.DriverSQLite)
		}
		stored, err := sq.Entries(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SEQ\tID\tACCEPTED\tDAYS\tPLATOON")
		for _, e := range stored {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n", e.Seq, e.ID, e.AcceptedAt.Format(time.RFC3339), e.Plan.SimulationDays, e.Plan.PlatoonID)
		}
		return w.Flush()
	}

	doc, err := s.Load(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc.Entries, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	path := cfg.Storage.ExportFile
	if len(args) == 1 {
		path = args[0]
	}
	path = config.Resolve(workspace, path)

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	doc, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if err := store.ExportEntries(path, doc.Entries); err != nil {
		return err
	}
	logging.Get(logging.CategoryStore).Info("entries exported", zap.String("path", path), zap.Int("count", len(doc.Entries)))
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(doc.Entries), path)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	doc, err := s.Load(ctx)
	if err != nil {
		return err
	}
	counts := store.Count(doc)

	location := config.Resolve(workspace, cfg.Storage.DataFile)
	if cfg.Storage.Driver == config.DriverSQLite {
		location = config.Resolve(workspace, cfg.Storage.DatabasePath)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Workspace:\t%s\n", workspace)
	fmt.Fprintf(w, "Storage:\t%s (%s)\n", cfg.Storage.Driver, location)
	if doc.Home.UserName != "" {
		fmt.Fprintf(w, "User:\t%s\n", doc.Home.UserName)
	}
	fmt.Fprintf(w, "Company ID:\t%d\n", doc.Company.CompanyID)
	fmt.Fprintf(w, "Platoons:\t%d\n", counts.Platoons)
	fmt.Fprintf(w, "Transports:\t%d\n", counts.Transports)
	fmt.Fprintf(w, "Deliveries:\t%d\n", counts.Deliveries)
	fmt.Fprintf(w, "Entries:\t%d\n", counts.Entries)
	if logging.IsDebugMode() {
		fmt.Fprintf(w, "Logs:\t%s\n", logging.LogsDir())
	}
	return w.Flush()
}
