package main

import "github.com/forestwatch/forestwatch/cmd/forestwatch/cmd"

func main() {
	cmd.Execute()
}
