package main

import (
	"flag"
	"os"
	"strings"

	"pausal/config"
	"pausal/database"
	"pausal/router"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title Pausal bookkeeping API
// @version 1.0
// @description Bookkeeping backend for a sole proprietor under the flat-tax regime: income book (KPO), expenses, tax obligations, recurring payments and bank statement reconciliation
// @host localhost:8080
// @BasePath /

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "path to an external config file (optional)")
	flag.StringVar(&configFile, "c", "", "path to an external config file (shorthand)")
	flag.StringVar(&port, "port", "", "listen port, e.g. 8080 or :8080")
	flag.StringVar(&port, "p", "", "listen port (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.BoolVar(&showVersion, "v", false, "print version and exit (shorthand)")
}

func main() {
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if showVersion {
		log.Info().Msg("pausal v1.0.0")
		return
	}

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Info().Str("port", port).Msg("port overridden from command line")
	}

	if err := database.Init(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	r := router.SetupRouter(cfg)

	log.Info().
		Str("addr", cfg.Server.Port).
		Str("swagger", "http://localhost"+cfg.Server.Port+"/swagger/index.html").
		Msg("server starting")

	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
