package main

import "pmlens/cmd"

func main() {
	cmd.Execute()
}
