package main

import "github.com/ebuckley/tagmail/internal/cli"

func main() {
	cli.Execute()
}
