package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/goliatone/go-reorder/internal/server"
	"github.com/goliatone/go-reorder/pkg/dragdrop"
	"github.com/goliatone/go-reorder/pkg/order"
	"github.com/goliatone/go-reorder/pkg/page"
)

func main() {
	envFile := flag.String("env", ".env", "dotenv file with REORDER_* settings")
	flag.Parse()

	cfg, err := server.LoadConfig(*envFile)
	if err != nil {
		log.Fatalf("Error loading %s: %v", *envFile, err)
	}

	e := echo.New()
	e.HideBanner = true
	if cfg.Debug {
		e.Logger.SetLevel(log.DEBUG)
	}

	opts := dragdrop.DefaultOptions()
	if cfg.ConfigPath != "" {
		opts, err = dragdrop.LoadConfig(cfg.ConfigPath)
		if err != nil {
			e.Logger.Fatal(err)
		}
	}

	list := defaultList()
	if cfg.ListPath != "" {
		list, err = page.LoadList(cfg.ListPath)
		if err != nil {
			e.Logger.Fatal(err)
		}
	}

	renderer, err := page.New(page.WithControllerOptions(opts))
	if err != nil {
		e.Logger.Fatal(err)
	}

	srv, err := server.New(renderer, list,
		server.WithEcho(e),
		server.WithOnSubmit(func(_ context.Context, records []order.Record) error {
			e.Logger.Infof("order submitted: %s", order.Encode(records))
			return nil
		}),
	)
	if err != nil {
		e.Logger.Fatal(err)
	}

	e.Logger.Fatal(srv.Start(fmt.Sprintf("0.0.0.0:%s", cfg.Port)))
}

func defaultList() page.List {
	return page.List{
		Title:  "Reorder",
		Action: "/api/order",
		Items: []page.Item{
			{ID: "1", Body: "<h3>First</h3><p>Alpha</p>"},
			{ID: "2", Body: "<h3>Second</h3><p>Beta</p>"},
			{ID: "3", Body: "<h3>Third</h3><p>Gamma</p>"},
		},
	}
}
