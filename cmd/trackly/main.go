package main

import "github.com/dmitrijs2005/trackly/cmd/trackly/cmd"

func main() {
	cmd.Execute()
}
