package main

import "github.com/masmgr/gecko-go/cmd"

func main() {
	cmd.Run()
}
