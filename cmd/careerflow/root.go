package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Local development keeps secrets in .env; absence is not an error.
	_ = godotenv.Load()

	var root = &cobra.Command{Use: "careerflow"}

	root.AddCommand(serveCMD(), migrateCMD())
	_ = root.Execute()
}
