package main

import "tourism-engine/internal/cli"

func main() {
	cli.Execute()
}
