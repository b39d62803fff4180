package main

import (
	"os"

	"github.com/chris-regnier/daybook/cmd"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
