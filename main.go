package main

import "github.com/jychang48/firedrake/cmd"

func main() {
	cmd.Execute()
}
