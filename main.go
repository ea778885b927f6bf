package main

import "github.com/suderio/eels-and-escalators/cmd"

func main() {
	cmd.Execute()
}
