package main

import "github.com/giilab/giiscope/internal/cli"

func main() {
	cli.Execute()
}
