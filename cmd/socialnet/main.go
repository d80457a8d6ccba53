package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/thereayou/socialnet/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		log.Error().Err(err).Msg("socialnet")
		os.Exit(1)
	}
}
