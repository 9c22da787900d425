package main

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

//Config represents options given in the environment
type Config struct {
	ListenAddr     string   //addr format used for net.Dial; required
	Prefix         string   //url prefix to mount api to without trailing slash
	AllowedOrigins []string //comma separated; default: any origin

	LogLevel  string //zerolog level name; default: info
	LogPretty bool   //human readable console output

	SessionCacheBytes  int //size of the chat session cache; default: 64MiB
	SessionIdleMinutes int //idle chat sessions are dropped after; default: 30

	EchoDelayMS        int //default: 100
	ReplyDelayMS       int //default: 1000
	PanelDelayMS       int //default: 500
	SendDelayMS        int //default: 1500
	SendTimeoutSeconds int //default: 10

	GatewayURL string //contact endpoint used by chat sessions; default: this server's /send-email

	NotionToken        string //static content is served if empty
	ArticlesDatabaseID string
	ProjectsDatabaseID string

	RedisAddr           string //content is not cached if empty
	RedisPassword       string
	ContentCacheMinutes int //default: 15

	MailProvider   string //sendgrid, ses or stub; default: stub
	SendGridAPIKey string
	MailFrom       string
	MailFromName   string //default: Portfolio Contact Form
	MailTo         string //default: the profile contact address
	AWSRegion      string //default: ap-northeast-2

	SQLDSN string //submissions are archived in MySQL if set

	AdminKey string //X-Admin-Key for the admin routes; disabled if empty
}

var config = &Config{}

func checkEmpty(val, name string) {
	if val == "" {
		log.Fatal().Msgf("PORTFOLIO_%s must be configured", name)
	}
}

func init() {
	if err := godotenv.Load(); err == nil {
		log.Info().Msg("Loaded environment from .env")
	}

	err := envconfig.Process("PORTFOLIO", config)
	if err != nil {
		log.Fatal().Err(err).Msg("Error reading configuration from environment")
	}

	if config.SessionCacheBytes == 0 {
		config.SessionCacheBytes = 64 << 20
	}
	if config.SessionIdleMinutes == 0 {
		config.SessionIdleMinutes = 30
	}

	if config.EchoDelayMS == 0 {
		config.EchoDelayMS = 100
	}
	if config.ReplyDelayMS == 0 {
		config.ReplyDelayMS = 1000
	}
	if config.PanelDelayMS == 0 {
		config.PanelDelayMS = 500
	}
	if config.SendDelayMS == 0 {
		config.SendDelayMS = 1500
	}
	if config.SendTimeoutSeconds == 0 {
		config.SendTimeoutSeconds = 10
	}

	if config.ContentCacheMinutes == 0 {
		config.ContentCacheMinutes = 15
	}

	config.MailProvider = strings.ToLower(config.MailProvider)
	if config.MailProvider == "" {
		config.MailProvider = "stub"
	}
	if config.MailFromName == "" {
		config.MailFromName = "Portfolio Contact Form"
	}
	if config.AWSRegion == "" {
		config.AWSRegion = "ap-northeast-2"
	}

	checkEmpty(config.ListenAddr, "LISTENADDR")

	if config.NotionToken != "" {
		checkEmpty(config.ArticlesDatabaseID, "ARTICLESDATABASEID")
		checkEmpty(config.ProjectsDatabaseID, "PROJECTSDATABASEID")
	}

	switch config.MailProvider {
	case "sendgrid":
		checkEmpty(config.SendGridAPIKey, "SENDGRIDAPIKEY")
		checkEmpty(config.MailFrom, "MAILFROM")
	case "ses":
		checkEmpty(config.MailFrom, "MAILFROM")
	case "stub":
	default:
		log.Fatal().Str("provider", config.MailProvider).Msg("PORTFOLIO_MAILPROVIDER must be sendgrid, ses or stub")
	}

	if config.SQLDSN != "" && !strings.Contains(config.SQLDSN, "parseTime=true") {
		log.Fatal().Msg("mysql DSN must contain \"parseTime=true\"")
	}
}
