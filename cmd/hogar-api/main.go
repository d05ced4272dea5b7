package main

import (
	"fmt"
	"os"

	"github.com/hogar-app/hogar/hogarservice"
)

func main() {
	if err := hogarservice.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
