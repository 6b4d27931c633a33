package gpu

import "log"

// Debug turns on verbose resource and dispatch logging.
var Debug bool

func Log(format string, args ...any) {
	log.Printf("gpu: "+format, args...)
}
