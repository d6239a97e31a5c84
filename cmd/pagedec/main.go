package main

import (
	"github.com/opencgm/pagedec/cmd/pagedec/cmd"
)

func main() {
	cmd.Execute()
}
