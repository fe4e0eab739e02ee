package main

import (
	"github.com/purr-dev/purr/cmd"

	_ "github.com/purr-dev/purr/internal/provider/init"
	_ "github.com/purr-dev/purr/internal/vcs/init"
)

func main() {
	cmd.Execute()
}
