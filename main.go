package main

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/60cod/ygna-chat/api"
	"github.com/60cod/ygna-chat/cache"
	"github.com/60cod/ygna-chat/chatbot"
	"github.com/60cod/ygna-chat/httpapi"
	"github.com/60cod/ygna-chat/logging"
	"github.com/60cod/ygna-chat/mail"
	"github.com/60cod/ygna-chat/metrics"
	"github.com/60cod/ygna-chat/notion"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.Init(logging.Config{Level: config.LogLevel, Pretty: config.LogPretty})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.NewChatMetrics(nil)

	content, contentName := newContentSource()

	sender, err := newSender(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("provider", config.MailProvider).Msg("Could not create mail sender")
	}
	to := config.MailTo
	if to == "" {
		to = chatbot.DefaultProfile.ContactEmail
	}
	mailer := mail.NewContactMailer(sender, to)

	var db *sql.DB
	if config.SQLDSN != "" {
		db, err = sql.Open("mysql", config.SQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("Could not open database")
		}
		defer db.Close()
	}

	gateway := chatbot.NewHTTPGateway(gatewayURL())
	timing := chatbot.Timing{
		EchoDelay:   time.Duration(config.EchoDelayMS) * time.Millisecond,
		ReplyDelay:  time.Duration(config.ReplyDelayMS) * time.Millisecond,
		PanelDelay:  time.Duration(config.PanelDelayMS) * time.Millisecond,
		SendDelay:   time.Duration(config.SendDelayMS) * time.Millisecond,
		SendTimeout: time.Duration(config.SendTimeoutSeconds) * time.Second,
	}
	store := chatbot.NewLRUStore(config.SessionCacheBytes, time.Duration(config.SessionIdleMinutes)*time.Minute, func() *chatbot.Machine {
		return chatbot.NewMachine(chatbot.NewFactory(), chatbot.TimerScheduler{}, gateway, chatbot.WithTiming(timing))
	})
	go store.Run(ctx, time.Minute)

	r := httpapi.NewRouter(&httpapi.Config{
		Prefix:         config.Prefix,
		AllowedOrigins: config.AllowedOrigins,
		Content:        content,
		ContentName:    contentName,
		Mailer:         mailer,
		DB:             db,
		AdminKey:       config.AdminKey,
		Chat:           chatbot.NewHandler(store, m, originChecker(config.AllowedOrigins)),
		Metrics:        m,
	})

	server := &http.Server{Addr: config.ListenAddr, Handler: r}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Shutdown failed")
		}
	}()

	log.Info().Str("addr", config.ListenAddr).Str("prefix", config.Prefix).Str("content", contentName).Str("mail", config.MailProvider).Msg("Listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

//newContentSource returns the configured content source and its metrics label
func newContentSource() (api.ContentSource, string) {
	var src api.ContentSource = api.StaticSource{}
	name := "static"

	if config.NotionToken != "" {
		src = notion.NewSource(notion.NewClient(config.NotionToken), config.ArticlesDatabaseID, config.ProjectsDatabaseID)
		name = "notion"
	}

	if config.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: config.RedisAddr, Password: config.RedisPassword})
		src = cache.NewRedisSource(src, client, "portfolio", time.Duration(config.ContentCacheMinutes)*time.Minute)
	}

	return src, name
}

func newSender(ctx context.Context) (mail.Sender, error) {
	switch config.MailProvider {
	case "sendgrid":
		return mail.NewSendGridSender(mail.SendGridConfig{
			APIKey:    config.SendGridAPIKey,
			FromEmail: config.MailFrom,
			FromName:  config.MailFromName,
		})
	case "ses":
		return mail.NewSESSender(ctx, mail.SESConfig{
			Region:    config.AWSRegion,
			FromEmail: config.MailFrom,
			FromName:  config.MailFromName,
		})
	}
	return mail.StubSender{}, nil
}

//gatewayURL returns the contact endpoint chat sessions deliver to
func gatewayURL() string {
	if config.GatewayURL != "" {
		return config.GatewayURL
	}

	host, port, err := net.SplitHostPort(config.ListenAddr)
	if err != nil {
		return "http://" + config.ListenAddr + config.Prefix + "/send-email"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + config.Prefix + "/send-email"
}

//originChecker returns a WebSocket origin check for the allowed origins, or nil to allow any
func originChecker(origins []string) func(r *http.Request) bool {
	if len(origins) == 0 {
		return nil
	}
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			return nil
		}
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}
