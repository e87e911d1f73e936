package helper

import (
	"crypto/rand"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/ryanuber/columnize"
)

// FormatList formats a list into a string
func FormatList(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"

	return columnize.Format(in, columnConf)
}

// FormatKV formats key value pairs:
//
// Key = Value
//
// Key = <none>
func FormatKV(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"
	columnConf.Glue = " = "

	return columnize.Format(in, columnConf)
}

// NewLogger returns the console logger for a log level name
func NewLogger(level string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "pastamsm",
		Level:  hclog.LevelFromString(level),
		Output: os.Stderr,
	})
}

func randomSeed() ([]byte, error) {
	seed := make([]byte, 16)
	if _, err := rand.Read(seed); err != nil {
		return nil, err
	}

	return seed, nil
}
