package main

import "github.com/forPelevin/vidagent/internal/cli"

func main() {
	cli.Main()
}
