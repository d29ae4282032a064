package main

import (
	"github.com/daedaleanai/runsyn/cmd"
)

func main() {
	cmd.Execute()
}
