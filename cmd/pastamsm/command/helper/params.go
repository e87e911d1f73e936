package helper

import (
	"encoding/hex"
	"fmt"
	"os"
	"runtime"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"pastamsm.mleku.dev/pasta"
	"pastamsm.mleku.dev/pippenger"
)

const (
	configFlag     = "config"
	logLevelFlag   = "log-level"
	curveFlag      = "curve"
	npointsFlag    = "npoints"
	seedFlag       = "seed"
	windowFlag     = "window"
	workersFlag    = "workers"
	signedFlag     = "signed"
	noGPUFlag      = "no-gpu"
	emulateGPUFlag = "emulate-gpu"
	portableFlag   = "portable"
	forceADXFlag   = "force-adx"
)

// EngineParams holds the flags shared by the commands that run an MSM
type EngineParams struct {
	ConfigPath string
	LogLevel   string
	Curve      string
	NPoints    int
	Seed       string

	window     int
	workers    int
	signed     bool
	noGPU      bool
	emulateGPU bool
	portable   bool
	forceADX   bool
}

// Settings is the resolved engine setup of a command
type Settings struct {
	Config     pippenger.Config
	Logger     hclog.Logger
	ISA        pasta.ISA
	EmulateGPU bool
	Seed       []byte
}

// RegisterFlags adds the engine flags to cmd
func (p *EngineParams) RegisterFlags(cmd *cobra.Command, defaultPoints int) {
	cmd.Flags().StringVar(&p.ConfigPath, configFlag, "", "the YAML config file with engine settings")
	cmd.Flags().StringVar(&p.LogLevel, logLevelFlag, "info", "the log level for console output")
	cmd.Flags().StringVar(&p.Curve, curveFlag, "pallas", fmt.Sprintf("the curve to run on, one of %v", Curves))
	cmd.Flags().IntVar(&p.NPoints, npointsFlag, defaultPoints, "the number of point/scalar pairs")
	cmd.Flags().StringVar(&p.Seed, seedFlag, "", "hex seed for the generated inputs (default random)")
	cmd.Flags().IntVar(&p.window, windowFlag, 0, "the window width in bits (0 picks one from the input size)")
	cmd.Flags().IntVar(&p.workers, workersFlag, runtime.NumCPU(), "the number of CPU workers")
	cmd.Flags().BoolVar(&p.signed, signedFlag, false, "use signed-digit windows")
	cmd.Flags().BoolVar(&p.noGPU, noGPUFlag, false, "never dispatch to the GPU")
	cmd.Flags().BoolVar(&p.emulateGPU, emulateGPUFlag, false, "run the device path on the CPU emulator")
	cmd.Flags().BoolVar(&p.portable, portableFlag, false, "use the portable field multiplication")
	cmd.Flags().BoolVar(&p.forceADX, forceADXFlag, false, "use the accelerated field multiplication")

	cmd.MarkFlagsMutuallyExclusive(portableFlag, forceADXFlag)
	cmd.MarkFlagsMutuallyExclusive(noGPUFlag, emulateGPUFlag)
}

// Resolve merges the config file, the environment and the flags, in that
// order of precedence from lowest to highest, and installs the selected
// field arithmetic
func (p *EngineParams) Resolve(cmd *cobra.Command) (*Settings, error) {
	config := DefaultConfig()

	if p.ConfigPath != "" {
		fileConfig, err := ReadConfigFile(p.ConfigPath)
		if err != nil {
			return nil, err
		}

		config = fileConfig
	}

	if err := config.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed(logLevelFlag) {
		config.LogLevel = p.LogLevel
	}

	if flags.Changed(windowFlag) {
		config.Engine.WindowBits = p.window
	}

	if flags.Changed(workersFlag) {
		config.Engine.Workers = p.workers
	}

	if flags.Changed(signedFlag) {
		config.Engine.SignedDigits = p.signed
	}

	if flags.Changed(noGPUFlag) {
		config.Engine.DisableGPU = p.noGPU
	}

	if flags.Changed(portableFlag) {
		config.Portable = p.portable
	}

	if flags.Changed(forceADXFlag) {
		config.ForceADX = p.forceADX
	}

	if p.NPoints < 0 {
		return nil, fmt.Errorf("--%s must not be negative", npointsFlag)
	}

	if err := config.Engine.Validate(); err != nil {
		return nil, err
	}

	isa, err := pasta.ResolveISA(config.Portable, config.ForceADX)
	if err != nil {
		return nil, err
	}

	seed, err := p.seed()
	if err != nil {
		return nil, err
	}

	return &Settings{
		Config:     config.Engine,
		Logger:     NewLogger(config.LogLevel),
		ISA:        pasta.SetISA(isa),
		EmulateGPU: p.emulateGPU,
		Seed:       seed,
	}, nil
}

func (p *EngineParams) seed() ([]byte, error) {
	if p.Seed == "" {
		return randomSeed()
	}

	seed, err := hex.DecodeString(p.Seed)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", seedFlag, err)
	}

	return seed, nil
}
