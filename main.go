package main

import "librarywatch/cmd"

func main() {
	cmd.Execute()
}
