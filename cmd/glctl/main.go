package main

import (
	"os"

	"github.com/SscSPs/gl_backend/internal/cli"
	"github.com/SscSPs/gl_backend/internal/platform/config"
)

func main() {
	if err := cli.NewRootCommand(config.LoadConfig).Execute(); err != nil {
		os.Exit(1)
	}
}
