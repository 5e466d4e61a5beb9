package main

import "cipherstudio/internal/cli"

func main() {
	cli.Execute()
}
