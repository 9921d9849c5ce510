package main

import "github.com/fulmenhq/datavault/cmd"

func main() {
	cmd.Execute()
}
