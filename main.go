package main

import (
	"os"

	_ "catalina-keeper/cmd"
	"catalina-keeper/cmd/root"
	"catalina-keeper/internal/logger"
)

func main() {
	if err := root.RootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
	os.Exit(0)
}
