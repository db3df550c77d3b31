// Wraps progressbar/v3 for the two long-running phases: trace generation
// and the tick loop. Disabled at debug log level so progress rendering
// doesn't interleave with verbose log output.

package cmd

import (
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
)

func newProgressBar(max int64, description string) *progressbar.ProgressBar {
	if logrus.GetLevel() >= logrus.DebugLevel {
		return progressbar.DefaultSilent(max)
	}
	return progressbar.NewOptions64(max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
