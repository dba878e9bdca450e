package main

import (
	"fmt"
	"os"

	"github.com/sadopc/workday/internal/cli"
	"github.com/sadopc/workday/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	app := &cli.App{Config: cfg}
	defer app.Close()

	if err := cli.NewRootCmd(app).Execute(); err != nil {
		app.Close()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
