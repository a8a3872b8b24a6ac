package main

import "github.com/kamal-hamza/fc-cli/cmd"

func main() {
	cmd.Execute()
}
