// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tinytable/rowdb/internal/catalog"
	"github.com/tinytable/rowdb/internal/config"
	"github.com/tinytable/rowdb/internal/engine"
	"github.com/tinytable/rowdb/internal/parser"
	"github.com/tinytable/rowdb/internal/repl"
	"github.com/tinytable/rowdb/internal/start"
)

func main() {
	cfg, err := config.Parse()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	db, err := catalog.Open(cfg.DBPath, sugar)
	if err != nil {
		sugar.Fatalw("opening database", "error", err)
	}
	defer db.Close()

	printer := repl.NewTablePrinter(os.Stdout)
	exec := engine.New(db, printer, sugar)
	p := parser.New(exec)
	r := repl.New(os.Stdin, os.Stdout, p, db, sugar)

	err = start.Start(context.Background(), 5*time.Second, r.Run)
	if err != nil {
		sugar.Fatalw("run failed", "error", err)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = ""
	return cfg.Build()
}
