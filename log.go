package mwr

import (
	"io"
	"log"
)

// Logger receives diagnostics about skipped periods and best effort
// solutions. It discards everything unless replaced, the CLI sets it in
// verbose mode.
var Logger = log.New(io.Discard, "", 0)
