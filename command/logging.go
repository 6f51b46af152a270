package command

import (
	"github.com/op/go-logging"
	"github.com/tliron/kutil/util"
)

var log = logging.MustGetLogger("command")

// configureLogging sends logs to path, or to stderr when path is empty.
// stdout carries the protocol and must stay clean.
func configureLogging(verbosity int, path string) {
	if path == "" {
		util.ConfigureLogging(verbosity, nil)
	} else {
		util.ConfigureLogging(verbosity, &path)
	}
}
