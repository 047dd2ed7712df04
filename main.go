// Package main is the entry point for the vidmark application.
package main

import (
	"github.com/samber/lo"

	"github.com/vidmark-cli/vidmark/cmd"
	"github.com/vidmark-cli/vidmark/config"
	"github.com/vidmark-cli/vidmark/internal/cache"
	"github.com/vidmark-cli/vidmark/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cache.CollectGarbage()

	cmd.Execute()
}
