package main

import (
	"camconsole/cmd"

	"github.com/joho/godotenv"
)

func main() {
	// A .env file is optional; CAMCONSOLE_* variables may also come from the shell.
	_ = godotenv.Load()
	cmd.Execute()
}
