package main

import (
	"github.com/plural-labs/escrow-gateway/cmd"
)

func main() {
	cmd.Execute()
}
