package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"friday/internal/analysis"
	"friday/internal/apps"
	"friday/internal/assistant"
	"friday/internal/chart"
	"friday/internal/collector"
	"friday/internal/config"
	"friday/internal/notifier"
	"friday/internal/recorder"
	"friday/internal/websearch"
)

type appOptions struct {
	configPath string
	envPath    string
}

// App holds the wired components shared by every command.
type App struct {
	Config    *config.Config
	Assistant *assistant.Assistant
	Journal   recorder.Recorder
}

func newApp(opts *appOptions) (*App, error) {
	cfg, err := config.Load(opts.configPath, opts.envPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.SetupLogging()

	fetchOpts := []collector.Option{
		collector.WithTimeout(cfg.DataSource.Timeout),
		collector.WithRateLimit(cfg.DataSource.RateLimit),
	}
	yahoo := collector.NewYahooFetcher(cfg.Proxy, cfg.DataSource.ChartRange,
		append(fetchOpts, collector.WithBaseURL(cfg.DataSource.YahooURL))...)
	mfapi := collector.NewMFAPIFetcher(cfg.Proxy,
		append(fetchOpts, collector.WithBaseURL(cfg.DataSource.MFAPIURL))...)
	log.Info().Str("stocks", yahoo.Name()).Str("funds", mfapi.Name()).Msg("data sources ready")

	var journal recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		} else {
			journal = sr
		}
	}

	analyzer := analysis.New(collector.NewCollector(yahoo, mfapi), nil)
	if cfg.Charts.Enabled {
		analyzer.Charts = chart.NewRenderer(cfg.Charts.Dir)
	}
	analyzer.Journal = journal

	search := websearch.NewAggregator(
		websearch.NewWikipedia(websearch.WithBaseURL(cfg.Search.WikipediaURL)),
		websearch.NewDuckDuckGo(websearch.WithBaseURL(cfg.Search.DuckDuckGoURL)),
		websearch.NewBing(websearch.WithBaseURL(cfg.Search.BingURL)),
	)
	search.Wait = cfg.Search.Wait

	asst := assistant.New(analyzer, search, apps.NewController(apps.NewExecLauncher()))
	log.Info().Int("rules", len(asst.Rules())).Bool("charts", cfg.Charts.Enabled).Msg("assistant ready")

	return &App{Config: cfg, Assistant: asst, Journal: journal}, nil
}

// Close releases the journal.
func (a *App) Close() {
	if err := a.Journal.Close(); err != nil {
		log.Warn().Err(err).Msg("close journal")
	}
}

// dispatch answers text arriving on channel and journals the interaction.
func (a *App) dispatch(ctx context.Context, channel recorder.Channel, text string) (string, string) {
	id := uuid.New().String()
	start := time.Now()
	reply, rule := a.Assistant.Dispatch(ctx, text)
	_, chartPath := notifier.ExtractChart(reply)
	if err := a.Journal.RecordInteraction(&recorder.Interaction{
		At:        start,
		RequestID: id,
		Channel:   channel,
		Rule:      rule,
		Duration:  time.Since(start),
		Chart:     chartPath != "",
		Failed:    strings.HasPrefix(reply, "Error: ") || strings.HasPrefix(reply, "Sorry, "),
	}); err != nil {
		log.Warn().Err(err).Str("request_id", id).Msg("record interaction failed")
	}
	return reply, rule
}

// handler adapts dispatch to the Telegram command callback.
func (a *App) handler(channel recorder.Channel) notifier.CommandHandler {
	return func(ctx context.Context, text string) string {
		reply, _ := a.dispatch(ctx, channel, text)
		return reply
	}
}
