package main

import "wikiview/cmd"

func main() {
	cmd.Execute()
}
