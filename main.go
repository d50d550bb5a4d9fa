package main

import (
	"io"
	"net/url"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tripbudget/backend/internal/cli"
	"github.com/tripbudget/backend/internal/config"
	v1 "github.com/tripbudget/backend/pkg/controllers/v1"
	"github.com/tripbudget/backend/pkg/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.GinMode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Msg(err.Error())
	}

	apiURL, err := url.Parse(cfg.APIURL)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	service, closeDB, err := cli.OpenService(cfg)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer closeDB()

	r, teardown, err := router.Config(apiURL, cfg)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer teardown()

	router.AttachRoutes(v1.Controller{Service: service}, r.Group("/"))

	if err := r.Run(); err != nil {
		log.Error().Msg(err.Error())
	}
}
