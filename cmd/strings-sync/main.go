package main

import "strings-sync/internal/cli"

func main() {
	cli.Execute()
}
