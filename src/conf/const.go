// Package conf contains the constants that are used across packages for
// resolution limits and versioning, and the YAML configuration read by the
// command line tool.
package conf

import (
	"fmt"
	"time"
)

const (
	// VERSION is the version of the sigtype application.
	VERSION = "sigtype 0.1.0"
	// MAXPROCARITY is the largest parameter count a T.proc type can have.
	MAXPROCARITY = 10
	// MAXCHAINLENGTH bounds how many calls a single builder chain may link.
	MAXCHAINLENGTH = 256
	// DEFAULTWORKERS is the batch resolution parallelism when none is configured.
	DEFAULTWORKERS = 4
	// DEFAULTTIMEFORMAT is the strftime pattern used for report headers.
	DEFAULTTIMEFORMAT = "%Y-%m-%d %H:%M:%S"
)

// FullVersion returns the version and copyright.
func FullVersion() string {
	return fmt.Sprintf("%v Copyright (C) %v", VERSION, time.Now().Year())
}
