package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Damatnic/astral-planner/internal/api"
	"github.com/Damatnic/astral-planner/internal/logger"
)

type ServeCmd struct {
	Addr string `help:"Listen address." default:":8080"`
}

func (c *ServeCmd) Run(ctx *Context) error {
	handler := api.NewHandler(ctx.Planner)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	server := &http.Server{
		Addr:         c.Addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Info("starting schedule API", "addr", c.Addr)
	fmt.Printf("Listening on %s\n", c.Addr)

	return server.ListenAndServe()
}
