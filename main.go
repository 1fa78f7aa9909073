package main

import (
	"github.com/memoflow/noted/cmd"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		panic(err)
	}
}
