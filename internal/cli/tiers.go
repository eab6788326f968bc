package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hassetower/pkg/hasse"
	"github.com/matzehuels/hassetower/pkg/pipeline"
)

// tiersCommand creates the tiers command for inspecting tier assignment.
func (c *CLI) tiersCommand() *cobra.Command {
	var (
		input       inputFlags
		printTuples bool
	)

	cmd := &cobra.Command{
		Use:   "tiers <input>",
		Short: "Print the tiers of a Hasse diagram",
		Long: `Print the tiers of a Hasse diagram.

Tier 0 holds the maximal elements. Every other element sits one tier below
the deepest element that dominates it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTiers(cmd.Context(), args[0], input, printTuples)
		},
	}

	input.register(cmd)
	cmd.Flags().BoolVar(&printTuples, "print-tuples", false, "log each entity and its vector")

	return cmd
}

func (c *CLI) runTiers(ctx context.Context, path string, flags inputFlags, printTuples bool) error {
	entities, err := loadEntities(path, flags)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	d, err := runner.Build(ctx, entities, pipeline.Options{
		PrintTuples: printTuples || c.Config.PrintTuples,
	})
	if err != nil {
		return err
	}

	printTierTable(d)
	printStats(len(d.Elements), d.EdgeCount(), false)
	return nil
}

// tierTableRows lists every element as {tier, names, vector}, tier by tier.
func tierTableRows(d *hasse.Diagram) [][]string {
	var rows [][]string
	for i, tier := range d.Tiers {
		for _, id := range tier {
			e, _ := d.Element(id)
			rows = append(rows, []string{strconv.Itoa(i), strings.Join(e.Names, ", "), e.Vector.String()})
		}
	}
	return rows
}
