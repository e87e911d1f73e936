package run

import (
	"bytes"
	"fmt"

	"pastamsm.mleku.dev/cmd/pastamsm/command/helper"
)

type RunResult struct {
	Curve    string `json:"curve"`
	Points   int    `json:"points"`
	Seed     string `json:"seed"`
	Path     string `json:"path"`
	Device   string `json:"device"`
	ISA      string `json:"isa"`
	ResultX  string `json:"result_x"`
	Duration string `json:"duration"`
	Verified *bool  `json:"verified,omitempty"`
	Metrics  string `json:"-"`
}

func (r *RunResult) GetOutput() string {
	var buffer bytes.Buffer

	rows := []string{
		fmt.Sprintf("Curve|%s", r.Curve),
		fmt.Sprintf("Points|%d", r.Points),
		fmt.Sprintf("Seed|%s", r.Seed),
		fmt.Sprintf("Path|%s", r.Path),
		fmt.Sprintf("Device|%s", r.Device),
		fmt.Sprintf("Field arithmetic|%s", r.ISA),
		fmt.Sprintf("Result x|%s", r.ResultX),
		fmt.Sprintf("Duration|%s", r.Duration),
	}

	if r.Verified != nil {
		rows = append(rows, fmt.Sprintf("Verified|%t", *r.Verified))
	}

	buffer.WriteString("\n[MSM RESULT]\n")
	buffer.WriteString(helper.FormatKV(rows))

	if r.Metrics != "" {
		buffer.WriteString("\n\n[METRICS]\n")
		buffer.WriteString(r.Metrics)
	}

	buffer.WriteString("\n")

	return buffer.String()
}
