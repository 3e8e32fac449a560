package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"qubic.li/archiver/archiver"
	"qubic.li/archiver/qubicnode"
	"qubic.li/archiver/restapi"
)

const (
	defaultPort   = 2003
	defaultDBFile = "archiver-db"
	serverVersion = "v2"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("qubic-archiver", flag.ContinueOnError)
	fs.SetOutput(stderr)

	defaults := DefaultConfig()
	port := fs.Int("port", envInt("PORT", defaults.Port), "HTTP listen port")
	computor := fs.String("computor", os.Getenv("COMPUTOR"), "computor peer address (host:port), required")
	dbFile := fs.String("db-file", defaults.DBFile, "path to the bbolt database file")
	consumers := fs.Int("consumers", defaults.Consumers, "number of tick consumer workers")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := Config{Port: *port, Computor: *computor, DBFile: *dbFile, Consumers: *consumers}
	if err := cfg.Validate(); err != nil {
		_, _ = fmt.Fprintf(stderr, "qubic-archiver: %v\n", err)
		return 2
	}

	log := slog.New(slog.NewTextHandler(stderr, nil))

	store, err := archiver.Open(cfg.DBFile)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "open store: %v\n", err)
		return 2
	}
	defer store.Close()

	client := qubicnode.NewPersistentClient(cfg.Computor)
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	producer := archiver.NewProducer(client)
	go func() {
		if err := producer.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("producer stopped", "error", err)
		}
	}()
	go archiver.RunConsumers(ctx, cfg.Consumers, producer.Ticks(), client, store, log)

	handler := restapi.NewHandler(client, store, serverVersion)
	router := restapi.NewRouter(handler)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: router}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	_, _ = fmt.Fprintf(stdout, "qubic-archiver listening on %s, computor=%s db=%s consumers=%d\n", addr, cfg.Computor, cfg.DBFile, cfg.Consumers)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		_, _ = fmt.Fprintf(stderr, "serve failed: %v\n", err)
		return 1
	}
	return 0
}

func envInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
