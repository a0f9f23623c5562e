package main

import (
	"github.com/imagebake/imagebake/pkg/cli"
	"github.com/imagebake/imagebake/pkg/util/console"
)

func main() {
	cmd, err := cli.NewRootCommand()
	if err != nil {
		console.Fatalf("%s", err)
	}

	if err = cmd.Execute(); err != nil {
		console.Fatalf("%s", err)
	}
}
