package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	tb "gopkg.in/telebot.v3"

	"github.com/kiselevos/textquest_bot/internal/bot"
	"github.com/kiselevos/textquest_bot/internal/bot/middleware"
	"github.com/kiselevos/textquest_bot/internal/config"
	"github.com/kiselevos/textquest_bot/internal/db"
	"github.com/kiselevos/textquest_bot/internal/logging"
	"github.com/kiselevos/textquest_bot/internal/monitoring"
	"github.com/kiselevos/textquest_bot/internal/session"
	"github.com/kiselevos/textquest_bot/internal/snapshot"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(parent context.Context) error {
	conf, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log := logging.NewLogger(os.Stdout, conf.Logger, nil)

	// Tg settings
	pref := tb.Settings{
		Token:  conf.TG.Token,
		Poller: middleware.DropOldMessages(conf.Bot.PollTimeout, conf.Bot.DropOldMessagesAfter),
		OnError: func(err error, c tb.Context) {
			log.Error("telebot handler error", "error", err)
		},
	}

	b, err := tb.NewBot(pref)
	if err != nil {
		return fmt.Errorf("telebot: %w", err)
	}

	// Дальше ошибки дублируются админам
	log = logging.NewLogger(os.Stdout, conf.Logger, logging.NewNotifier(b, conf.Admin.AdminsID))
	slog.SetDefault(log)

	store, closeStore, err := openStore(conf)
	if err != nil {
		return err
	}
	defer closeStore()

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	sessions := session.NewRegistry(
		session.Config{
			MailboxSize:  conf.Session.MailboxSize,
			IdleTimeout:  conf.Session.IdleTimeout,
			MaxSessions:  conf.Session.MaxSessions,
			StoreTimeout: conf.Session.StoreTimeout,
		},
		store,
		bot.NewGateway(b),
		session.WithLogger(log),
		session.WithMetrics(session.NewMetrics(promReg)),
	)

	bot.NewHandlers(b, sessions, log).Register()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if conf.Metrics.Addr != "" {
		go func() {
			if err := monitoring.Serve(ctx, conf.Metrics.Addr, monitoring.NewRouter(promReg, sessions), log); err != nil {
				log.Error("monitoring server stopped", "error", err)
			}
		}()
	}

	go b.Start()
	log.Info("Bot starts...", "username", b.Me.Username, "snapshots", conf.Snapshot.Backend)

	<-ctx.Done()
	log.Info("shutting down")

	b.Stop()
	sessions.Close()
	return nil
}

// openStore выбирает хранилище снапшотов по SNAPSHOT_BACKEND
func openStore(conf *config.Config) (snapshot.Store, func(), error) {
	noop := func() {}

	switch conf.Snapshot.Backend {
	case config.BackendPostgres:
		database, err := db.NewDB(conf.Db)
		if err != nil {
			return nil, noop, err
		}
		if err := db.Migrate(database); err != nil {
			_ = database.Close()
			return nil, noop, err
		}
		return snapshot.NewPostgresStore(database), func() { _ = database.Close() }, nil

	case config.BackendS3:
		s3c := conf.Snapshot.S3
		opts := s3.Options{Region: s3c.Region}
		if s3c.Endpoint != "" {
			opts.BaseEndpoint = aws.String(s3c.Endpoint)
			opts.UsePathStyle = true
		}
		if s3c.AccessKey != "" {
			creds := aws.Credentials{AccessKeyID: s3c.AccessKey, SecretAccessKey: s3c.SecretKey, Source: "env"}
			opts.Credentials = aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
				return creds, nil
			})
		}
		return snapshot.NewS3Store(s3.New(opts), s3c.Bucket, s3c.Prefix), noop, nil

	default:
		return snapshot.NewFileStore(conf.Snapshot.Dir), noop, nil
	}
}
