// itempicker shows a scroll wheel on the terminal and prints the chosen item
// to stdout.
package main

import (
	"os"

	"github.com/runger/itempicker/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
