package main

import (
	"os"

	"lino/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
