package main

import (
	"os"

	"github.com/unilabvision/myuni/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
