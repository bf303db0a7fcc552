// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config parses the process's command-line flags into a run
// configuration.
package config

import (
	"flag"
	"fmt"
)

// Config is the parsed set of flags a run needs.
type Config struct {
	DBPath   string
	LogLevel string
}

var (
	dbPath   = flag.String("db", "rowdb.db", "path to the backing database file")
	logLevel = flag.String("log-level", "info", "log level: debug, info, warn, or error")
)

// Parse reads the process's flags. It calls flag.Parse itself, so it must
// be called at most once and before any other flag.Parse.
func Parse() (Config, error) {
	flag.Parse()
	switch *logLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("config: invalid -log-level %q", *logLevel)
	}
	return Config{DBPath: *dbPath, LogLevel: *logLevel}, nil
}
