package main

import (
	"github.com/NVIDIA/hostcheck/pkg/cli"
)

func main() {
	cli.Execute()
}
