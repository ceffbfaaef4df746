package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"InflationPanel/internal/di"
	"InflationPanel/internal/handler/cli"
	"InflationPanel/pkg/config"
	xhttp "InflationPanel/pkg/http"

	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	view := flag.String("view", "latest", "view to print: "+strings.Join(cli.Views, ", "))
	format := flag.String("format", "table", "output format: table or json")
	source := flag.String("source", "tuik", "source: tuik, enag or ito")
	mode := flag.String("mode", "yoy", "mode: mom or yoy")
	tf := flag.String("tf", "1y", "timeframe: 6m, 1y, 2y, 5y or all")
	period := flag.String("period", "all", "period: all, recent, crisis or pre-crisis")
	from := flag.String("from", "", "monthly chart start, e.g. \"Eki 2020\"")
	n := flag.Int("n", 12, "table rows")
	now := flag.String("now", "", "clock override: RFC3339, date or unix seconds")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	// Keep stdout clean for the rendered view.
	cfg.Log.Output = "stderr"
	cfg.Cache.Redis.Enabled = false

	logger, err := di.ProvideLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	m := di.ProvideMetrics()
	src := di.ProvideDatasetSource(di.ProvideHTTPClient(cfg), m, cfg)
	dash := di.ProvideDashboard(src, nil, m, logger, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Sources.Timeout)
	defer cancel()
	if err := dash.Load(ctx); err != nil {
		log.Fatalf("load: %v", err)
	}

	opts := cli.Options{
		View:   *view,
		Format: *format,
		Source: *source,
		Mode:   *mode,
		TF:     *tf,
		Period: *period,
		From:   *from,
		N:      *n,
		Now:    xhttp.ParseTimeDefault(*now, time.Now()),
	}
	if err := cli.Render(context.Background(), dash, opts, os.Stdout); err != nil {
		log.Printf("render: %v", err)
		os.Exit(1)
	}
}
