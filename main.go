package main

import "github.com/chazu/flexion/cmd"

func main() {
	cmd.Execute()
}
