package bench

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pastamsm.mleku.dev/cmd/pastamsm/command/helper"
)

const (
	samplesFlag = "samples"
)

var (
	params = &benchParams{}

	errNoSamples = errors.New("at least one sample is required")
)

type benchParams struct {
	helper.EngineParams

	samples int
}

func GetCommand() *cobra.Command {
	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Times repeated multi-scalar multiplications over one generated input",
		RunE:  runCommand,
	}

	params.RegisterFlags(benchCmd, 1<<16)
	benchCmd.Flags().IntVar(&params.samples, samplesFlag, 5, "the number of timed runs")

	return benchCmd
}

func runCommand(cmd *cobra.Command, _ []string) error {
	if params.samples < 1 {
		return errNoSamples
	}

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

	timings := make([]time.Duration, 0, params.samples)

	for i := 0; i < params.samples; i++ {
		_, elapsed, err := w.Run()
		if err != nil {
			return err
		}

		settings.Logger.Debug("sample", "index", i, "elapsed", elapsed)

		timings = append(timings, elapsed)
	}

	res := newBenchResult(w, settings.ISA.String(), timings)
	res.Metrics = helper.MetricsSummary(inm)

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.GetOutput())

	return nil
}
