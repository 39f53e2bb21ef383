package main

import (
	"os"

	"bsc-wallet-scanner/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
