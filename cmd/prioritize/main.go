package main

import (
	"os"

	"github.com/huc-prioritizer/internal/delivery/cli"
)

func main() {
	os.Exit(cli.Execute())
}
