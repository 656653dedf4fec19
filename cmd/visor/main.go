package main

import (
	"os"

	"github.com/jhoicas/cfdi-visor/internal/interfaces/cli"
)

func main() {
	os.Exit(cli.Execute())
}
