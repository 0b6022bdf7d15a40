package main

import "github.com/astroflux/agnjet/cmd"

func main() {
	cmd.Execute()
}
