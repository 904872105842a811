package main

import (
	"github.com/skcvote/ballotd/internal/cli"
)

func main() {
	cli.Run()
}
