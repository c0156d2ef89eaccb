package main

import (
	"github.com/andrescamacho/cardquest-go/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
