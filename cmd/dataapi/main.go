package main

import (
	"github.com/nimburion/dataapi/pkg/cli"
)

func main() {
	cli.Execute(cli.NewRootCommand())
}
