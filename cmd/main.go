package main

import (
	"fmt"
	"os"

	"github.com/entrykit/smartaccount/cmd/smartaccount"
)

func main() {
	rootCmd := smartaccount.BuildSmartAccountCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
