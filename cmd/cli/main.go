package main

import (
	"log"

	"github.com/moviebase/mediavault/internal/client/cli"
	"github.com/moviebase/mediavault/internal/client/config"
)

func main() {

	cfg := config.LoadConfig()

	if err := cli.Execute(cfg); err != nil {
		log.Fatalf("%v", err)
	}

}
