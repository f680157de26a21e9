package main

import "pl0c/cmd"

func main() {
	cmd.Execute()
}
