package main

import "locsync/cmd"

func main() {
	cmd.Execute()
}
