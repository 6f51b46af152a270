// Package makedb derives live variable definitions for Makefiles by dry-running
// make and parsing its data base dump.
package makedb

import (
	"errors"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("makedb")

// ErrNoOutput is reported when make printed only to stderr.
var ErrNoOutput = errors.New("no data base output")
