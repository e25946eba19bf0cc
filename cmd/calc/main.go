package main

import (
	"os"

	"github.com/Werneck0live/calculadora-energia/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
