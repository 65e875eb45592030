package main

import "github.com/dfirlab/goevidence/cmd/goevidence/cmd"

func main() {
	cmd.Execute()
}
