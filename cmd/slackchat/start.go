package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zostay/slackchat/internal/connector"
	"github.com/zostay/slackchat/internal/core"
	"github.com/zostay/slackchat/internal/logger"
	"github.com/zostay/slackchat/internal/slackapi"
)

var (
	configFile string

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the slackchat session",
		Long:  "Connect to Slack, listen for real-time events, and dispatch normalized messages",
		Run: func(cmd *cobra.Command, args []string) {
			config, err := core.LoadConfig(configFile)
			if err != nil {
				log.Fatalf("Failed to load config: %v", err)
			}

			fmt.Printf("Starting slackchat with config: %s\n", configFile)
			fmt.Printf("Token: %s\n", slackapi.MaskToken(config.Slack.Token))

			if err := logger.InitLogger(logger.Config{
				Level:        config.Logging.Level,
				File:         config.Logging.File,
				MaxSize:      config.Logging.MaxSize,
				MaxBackups:   config.Logging.MaxBackups,
				MaxAge:       config.Logging.MaxAge,
				Compress:     config.Logging.Compress,
				EnableStdout: config.Logging.EnableStdout,
			}); err != nil {
				log.Fatalf("Failed to initialize logger: %v", err)
			}

			logger.WithFields(logrus.Fields{
				"config_file": configFile,
				"log_level":   config.Logging.Level,
			}).Info("Logger initialized")

			client, transport := slackapi.NewRTM(config.Slack.Token)
			session := connector.NewSession(client, transport, &logDispatcher{}, connector.Options{
				Nickname:     config.Slack.Nickname,
				CacheTTL:     config.CacheTTL(),
				MarkInterval: config.MarkInterval(),
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := session.Initialize(ctx); err != nil {
				log.Fatalf("Failed to initialize session: %v", err)
			}

			logger.WithFields(logrus.Fields{
				"user_id":  session.Self().Username,
				"nickname": session.Self().Nickname,
			}).Info("Session ready")

			if err := session.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Fatalf("Session terminated: %v", err)
			}

			logger.Info("Shutting down")
		},
	}
)

// logDispatcher is the built-in dispatch target: it logs every normalized
// message. Embedding frameworks replace it with their own
// connector.Dispatcher when using slackchat as a library.
type logDispatcher struct{}

func (d *logDispatcher) Dispatch(msg *connector.Message) {
	logger.WithFields(logrus.Fields{
		"from":      msg.From.Username,
		"nickname":  msg.From.Nickname,
		"group":     msg.Group,
		"addressed": msg.To != nil,
		"text":      msg.Text,
	}).Info("message-dispatched")
}

func (d *logDispatcher) Resend(msg *connector.Message) {
	logger.WithFields(logrus.Fields{
		"from":  msg.From.Username,
		"group": msg.Group,
	}).Debug("message-resent")
}

func init() {
	startCmd.Flags().StringVarP(&configFile, "config", "c", "slackchat.yaml", "Configuration file path")
}
