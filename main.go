package main

import "pixprep/cmd"

func main() {
	cmd.Execute()
}
