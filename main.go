package main

import (
	"github.com/mircot/bubble-popper/cmd"
)

func main() {
	cmd.Execute()
}
