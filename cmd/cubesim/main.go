// cubesim - terminal Rubik's Cube simulator and solve timer.
package main

import (
	"github.com/SeamusWaldron/cubesim/internal/cli"
)

func main() {
	cli.Execute()
}
