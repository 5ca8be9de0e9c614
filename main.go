package main

import (
	"github.com/crawfordsm/gala/cmd"
)

func main() {
	cmd.Execute()
}
