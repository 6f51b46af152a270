package main

import (
	"github.com/tminor/makels/command"
)

func main() {
	command.Execute()
}
