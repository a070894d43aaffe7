package main

import (
	"github.com/envlock-dev/envlock/cmd"
)

func main() {
	cmd.Execute()
}
