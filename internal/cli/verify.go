package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hassetower/pkg/pipeline"
)

// verifyCommand creates the verify command.
func (c *CLI) verifyCommand() *cobra.Command {
	var input inputFlags

	cmd := &cobra.Command{
		Use:   "verify <input>",
		Short: "Build a Hasse diagram and check it",
		Long: `Build a Hasse diagram and check it against the dominance order.

Every edge must join an element to one it covers, every covering pair must be
joined by an edge, and every element must sit in the tier given by its
longest chain from a maximal element. The first violation is reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVerify(cmd.Context(), args[0], input)
		},
	}

	input.register(cmd)
	return cmd
}

func (c *CLI) runVerify(ctx context.Context, path string, flags inputFlags) error {
	entities, err := loadEntities(path, flags)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	d, err := runner.Build(ctx, entities, pipeline.Options{Verify: true})
	if err != nil {
		printError("Verification failed")
		return err
	}
	prog.done("Verified diagram")

	printSuccess("Diagram is a valid Hasse diagram")
	printKeyValue("elements", StyleNumber.Render(strconv.Itoa(len(d.Elements))))
	printKeyValue("tiers", StyleNumber.Render(strconv.Itoa(len(d.Tiers))))
	printKeyValue("edges", StyleNumber.Render(strconv.Itoa(d.EdgeCount())))
	return nil
}
