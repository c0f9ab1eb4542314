package logger

import (
	"flag"
	"strconv"

	"k8s.io/klog/v2"
)

// Usage:
// logger.InitLogger(verbosity, logFile)
// defer logger.Flush()
// ...klog.InfoS / klog.V(n).InfoS / klog.ErrorS

// InitLogger configures klog on its own flag set so it does not clash with the command line parser
func InitLogger(verbosity int, logFile string) error {
	flags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(flags)

	settings := map[string]string{
		"v":           strconv.Itoa(verbosity),
		"logtostderr": "true",
	}
	if logFile != "" {
		settings["logtostderr"] = "false"
		settings["alsologtostderr"] = "true"
		settings["log_file"] = logFile
	}

	for name, value := range settings {
		if err := flags.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}

func Flush() {
	klog.Flush()
}
