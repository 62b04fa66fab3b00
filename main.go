package main

import "github.com/philipparndt/meshview/cmd"

func main() {
	cmd.Execute()
}
