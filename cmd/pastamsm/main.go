package main

import (
	"pastamsm.mleku.dev/cmd/pastamsm/command/root"
)

func main() {
	root.NewRootCommand().Execute()
}
