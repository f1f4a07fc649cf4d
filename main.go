package main

import "github.com/bensuskins/habit-hub/internal/cli"

func main() {
	cli.Execute()
}
