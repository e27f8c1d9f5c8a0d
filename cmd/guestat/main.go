package main

import "github.com/spectralab/guestat/cmd/guestat/cmd"

func main() {
	cmd.Execute()
}
