package main

import (
	"os"

	ibctlcmd "github.com/collabsec/ibctl/pkg/ibctl/cmd"
)

func main() {
	root := ibctlcmd.NewRootCommand(ibctlcmd.DefaultConfig())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
