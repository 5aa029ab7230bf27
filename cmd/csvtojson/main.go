package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/polkiloo/usersvc/internal/csvjson"
	"github.com/polkiloo/usersvc/internal/logger"
)

const (
	inputPath  = "./csv/nodejs-hw1-ex1.csv"
	outputPath = "parsed.txt"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.New(slog.LevelInfo)
	if err := convertFile(ctx, inputPath, outputPath, log); err != nil {
		log.Error("csv conversion failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func convertFile(ctx context.Context, in, out string, log *slog.Logger) error {
	src, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	rows, err := csvjson.Convert(ctx, src, dst)
	if closeErr := dst.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close output: %w", closeErr)
	}
	if err != nil {
		return err
	}

	log.Info("csv converted", slog.String("input", in), slog.String("output", out), slog.Int("rows", rows))
	return nil
}
