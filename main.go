package main

import "script-translator/internal/cli"

func main() {
	cli.Execute()
}
