package main

import "github.com/epaynter/claude-prune/cmd"

func main() {
	cmd.Execute()
}
