package main

import "depsolve/internal/cli"

func main() {
	cli.Execute()
}
