package run

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"pastamsm.mleku.dev/cmd/pastamsm/command/helper"
)

var (
	params = &runParams{}
)

type runParams struct {
	helper.EngineParams

	verify bool
}

func GetCommand() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Generates a random input and computes its multi-scalar multiplication",
		RunE:  runCommand,
	}

	params.RegisterFlags(runCmd, 1<<12)
	runCmd.Flags().BoolVar(&params.verify, "verify", false, "check the result against the naive sum")

	return runCmd
}

func runCommand(cmd *cobra.Command, _ []string) error {
	inm, err := helper.SetupMetrics()
	if err != nil {
		return err
	}

	settings, err := params.Resolve(cmd)
	if err != nil {
		return err
	}

	w, err := helper.NewWorkload(params.Curve, params.NPoints, settings.Seed, settings)
	if err != nil {
		return err
	}

	x, elapsed, err := w.Run()
	if err != nil {
		return err
	}

	res := &RunResult{
		Curve:    w.Curve(),
		Points:   w.Points(),
		Seed:     hex.EncodeToString(settings.Seed),
		Path:     w.Route().String(),
		Device:   w.Device(),
		ISA:      settings.ISA.String(),
		ResultX:  x,
		Duration: elapsed.String(),
	}

	if params.verify {
		ok, err := w.Verify()
		if err != nil {
			return err
		}

		res.Verified = &ok
	}

	res.Metrics = helper.MetricsSummary(inm)

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.GetOutput())

	if res.Verified != nil && !*res.Verified {
		return fmt.Errorf("result differs from the naive sum")
	}

	return nil
}
