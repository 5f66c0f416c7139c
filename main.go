package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"pizzastore/config"
	"pizzastore/console"
	"pizzastore/gateway"
	"pizzastore/repository"
	"pizzastore/routes"
	"pizzastore/session"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.FromArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger := log.New(os.Stderr, "[pizzastore] ", log.LstdFlags)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Print("\n\n" +
		"*******************************************************\n" +
		"              User Interface                           \n" +
		"*******************************************************\n\n")

	fmt.Println("Connecting to database...")
	db, err := config.OpenDB(ctx, cfg, logger)
	if err != nil {
		logger.Printf("❌ Unable to connect to database: %v", err)
		fmt.Println("Make sure you started postgres on this machine")
		return 1
	}
	g := gateway.New(db)

	issuer, err := session.NewIssuer(session.DefaultTTL)
	if err != nil {
		logger.Printf("❌ %v", err)
		g.Close()
		return 1
	}

	in := console.NewReader(os.Stdin, os.Stdout)
	c := routes.New(repository.New(g), in, issuer, logger)
	err = interruptible(ctx, func() error { return c.Run(ctx) }, func() {
		fmt.Println()
		logger.Println("interrupted, shutting down")
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Printf("menu stopped: %v", err)
	}

	fmt.Print("Disconnecting from database...")
	if err := g.Close(); err != nil {
		logger.Printf("❌ %v", err)
	}
	fmt.Println("Done\n\nBye !")
	return 0
}

// interruptible runs fn and stops waiting for it once ctx ends, calling
// onInterrupt first. fn may be parked in a stdin read that never observes ctx.
func interruptible(ctx context.Context, fn func() error, onInterrupt func()) error {
	errc := make(chan error, 1)
	go func() { errc <- fn() }()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		onInterrupt()
		return ctx.Err()
	}
}
