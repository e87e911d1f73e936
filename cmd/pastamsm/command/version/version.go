package version

import (
	"bytes"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"pastamsm.mleku.dev/cmd/pastamsm/command/helper"
	"pastamsm.mleku.dev/device"
	"pastamsm.mleku.dev/pasta"
)

var (
	// Version is the release version, set at link time.
	Version = "0.1.0"

	// GitCommit is the commit the binary was built from, set at link time.
	GitCommit string
)

func GetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Returns the build version and the arithmetic selected for this host",
		Run:   runCommand,
	}
}

func runCommand(cmd *cobra.Command, _ []string) {
	res := &VersionResult{
		Version:   Version,
		Commit:    GitCommit,
		GoVersion: runtime.Version(),
		ISA:       pasta.CurrentISA().String(),
		Device:    device.Pallas().Name(),
		GPU:       device.Pallas().Available(),
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.GetOutput())
}

type VersionResult struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
	ISA       string `json:"isa"`
	Device    string `json:"device"`
	GPU       bool   `json:"gpu"`
}

func (r *VersionResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[VERSION INFO]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Release version|%s", r.Version),
		fmt.Sprintf("Commit hash|%s", r.Commit),
		fmt.Sprintf("Go version|%s", r.GoVersion),
		fmt.Sprintf("Field arithmetic|%s", r.ISA),
		fmt.Sprintf("Device|%s", r.Device),
		fmt.Sprintf("GPU available|%t", r.GPU),
	}))

	return buffer.String()
}
