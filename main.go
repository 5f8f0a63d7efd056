package main

import (
	"github.com/sw33tLie/diskdiff/cmd"
)

func main() {
	cmd.Execute()
}
