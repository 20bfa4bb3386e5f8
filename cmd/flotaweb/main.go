package main

import "github.com/flotamx/flotaweb/cmd/flotaweb/command"

func main() {
	command.Execute()
}
