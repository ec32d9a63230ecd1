package main

import "github.com/pders01/git-split/cmd"

func main() {
	cmd.Execute()
}
