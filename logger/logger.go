package logger

import (
	"log"
	"os"
)

// ProgressLogger logs the main steps of a pagination run.
var ProgressLogger = log.New(os.Stdout, "pageflow.progress: ", log.LstdFlags)

// WarningLogger emits a warning for each non fatal error, like missing
// geometry, unresolvable break positions or malformed layout input.
var WarningLogger = log.New(os.Stdout, "pageflow.warning: ", log.Lmsgprefix)
