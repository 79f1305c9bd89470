package main

import "thoreinstein.com/gitpr/cmd"

func main() {
	cmd.Execute()
}
