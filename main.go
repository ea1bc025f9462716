package main

import (
	"os"

	"github.com/chao-eng/mdblog/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
