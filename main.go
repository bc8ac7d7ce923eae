package main

import "github.com/gridbox/f1derive/cmd"

func main() {
	cmd.Execute()
}
