package main

import "clipkeep/cmd"

func main() {
	cmd.Execute()
}
