package main

import (
	"github.com/scoula/omok-server/internal/cli"
)

func main() {
	cli.Execute()
}
