package main

import "github.com/Bitlatte/sitenav/cmd"

func main() {
	cmd.Execute()
}
