package main

import "github.com/limnolab/ecoflux/cmd"

func main() {
	cmd.Execute()
}
