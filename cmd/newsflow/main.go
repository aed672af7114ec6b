package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/deusflow/newsflow/internal/app"
	"github.com/deusflow/newsflow/internal/config"
	"github.com/deusflow/newsflow/internal/logger"
	"github.com/deusflow/newsflow/internal/news"
	"github.com/deusflow/newsflow/internal/server"
)

func main() {
	logger.Init()

	cliApp := &cli.App{
		Name:  "newsflow",
		Usage: "fetch, summarize and persist category news",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "execute one fetch-summarize-persist run",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category", Value: "news", Usage: "news category (news, general, finance, business, sports, movies, tech)"},
					&cli.StringFlag{Name: "timeframe", Value: "daily", Usage: "daily, weekly or monthly"},
					&cli.StringFlag{Name: "date", Usage: "anchor date YYYY-MM-DD (defaults to today)"},
				},
				Action: runOnce,
			},
			{
				Name:  "serve",
				Usage: "serve the HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "port", Usage: "listen port (overrides PORT)"},
				},
				Action: serve,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func runOnce(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	rt, err := app.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	payload := map[string]string{
		"timeframe": c.String("timeframe"),
		"category":  c.String("category"),
	}
	if d := c.String("date"); d != "" {
		payload["selected_date"] = d
	}
	raw, _ := json.Marshal(payload)

	res, err := rt.Pipeline.Run(ctx, news.ParseRequest(string(raw), time.Now()))
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d articles, %d summaries, fallback=%t)\n",
		res.Path, res.Kept, res.Summaries, res.FallbackUsed)
	return nil
}

func serve(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if p := c.String("port"); p != "" {
		cfg.Port = p
	}

	rt, err := app.Build(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	srv := &server.Server{
		Pipeline: rt.Pipeline,
		Writer:   rt.Writer,
		Store:    rt.Store,
	}

	logger.Info("starting HTTP server", "port", cfg.Port)
	return http.ListenAndServe(":"+cfg.Port, srv.Router())
}
