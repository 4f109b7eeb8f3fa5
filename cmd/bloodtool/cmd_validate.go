package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"bloodtool/internal/conflict"
	"bloodtool/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	simulationDays int
	platoonID      int
	bloodInventory int
	assessments    []string
	saveEntry      bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a conflict assessment",
	Long: fmt.Sprintf(`Validates conflict-likelihood ranges against a simulation horizon.

Each --range takes start-end:l1,l2,l3,l4 where the four levels
(%s) sum to %d. The ranges must cover every
day from 1 to --days exactly once.

Example:
  bloodtool validate --days 14 --range 1-7:5,0,0,0 --range 8-14:1,2,1,1 --save`,
		strings.Join(conflict.LevelLabels[:], ", "), conflict.DistributionTotal),
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().IntVar(&simulationDays, "days", 0, "Length of the simulation in days")
	validateCmd.Flags().IntVar(&platoonID, "platoon", 0, "Medical platoon ID")
	validateCmd.Flags().IntVar(&bloodInventory, "inventory", 0, "Fresh whole blood inventory on hand (pints)")
	validateCmd.Flags().StringArrayVarP(&assessments, "range", "r", nil, "Day range assessment start-end:l1,l2,l3,l4 (repeatable)")
	validateCmd.Flags().BoolVar(&saveEntry, "save", false, "Append the accepted plan to the stored entries")
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := logging.Get(logging.CategoryConflict)
	out := cmd.OutOrStdout()

	sub := conflict.Submission{
		SimulationDays: simulationDays,
		PlatoonID:      platoonID,
		BloodInventory: bloodInventory,
	}
	for _, a := range assessments {
		r, d, err := conflict.ParseAssessment(a)
		if err != nil {
			return err
		}
		sub.Ranges = append(sub.Ranges, r)
		sub.Distributions = append(sub.Distributions, d)
	}

	plan, err := sub.Plan()
	if err != nil {
		msgs := conflict.Messages(err)
		for _, m := range msgs {
			fmt.Fprintln(cmd.ErrOrStderr(), m)
		}
		log.Info("assessment rejected", zap.Int("days", simulationDays), zap.Int("errors", len(msgs)))
		return fmt.Errorf("validation failed with %d error(s)", len(msgs))
	}
	log.Info("assessment accepted", zap.Int("days", plan.SimulationDays), zap.Int("ranges", len(plan.Ranges)))

	data, err := json.MarshalIndent(plan, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	fmt.Fprintln(out, string(data))

	if !saveEntry {
		return nil
	}

	ctx := commandContext(cmd)
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	doc, err := s.Load(ctx)
	if err != nil {
		return err
	}
	doc.AppendEntry(plan)
	if err := s.Save(ctx, doc); err != nil {
		return err
	}
	logger.Info("entry saved", zap.Int("entries", len(doc.Entries)))
	fmt.Fprintln(out, "Data added successfully!")
	return nil
}
