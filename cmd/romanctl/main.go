package main

import "github.com/danmuck/romanapi/internal/cli"

func main() {
	cli.Execute()
}
