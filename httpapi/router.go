package httpapi

import (
	"database/sql"
	"net/http"

	"github.com/60cod/ygna-chat/api"
	"github.com/60cod/ygna-chat/chatbot"
	"github.com/60cod/ygna-chat/metrics"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//Config holds the dependencies of the HTTP API
type Config struct {
	Prefix         string //url prefix to mount api to without trailing slash
	AllowedOrigins []string

	Content     api.ContentSource
	ContentName string //source label for metrics

	Mailer ContactMailer
	DB     *sql.DB //optional; submissions are archived if set

	AdminKey string //admin routes are disabled if empty

	Chat     *chatbot.Handler
	Metrics  *metrics.ChatMetrics
	Gatherer prometheus.Gatherer
}

//NewRouter returns an HTTP router for the HTTP API
func NewRouter(cfg *Config) http.Handler {

	//construct middleware
	var m = func(h returnHandler) http.Handler {
		return logMiddleware(jsonMiddleware(h))
	}

	content := cfg.Content
	if content == nil {
		content = api.StaticSource{}
	}
	src := &measuredSource{src: content, name: cfg.ContentName, metrics: cfg.Metrics}

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := mux.NewRouter()

	r.Path("/articles").Methods("GET").Handler(m(handleReadArticles(src)))
	r.Path("/articles/categories").Methods("GET").Handler(m(handleReadCategories(src)))
	r.Path("/projects").Methods("GET").Handler(m(handleReadProjects(src)))
	r.Path("/projects/featured").Methods("GET").Handler(m(handleReadFeaturedProjects(src)))

	r.Path("/send-email").Methods("POST").Handler(m(handleSendEmail(cfg.Mailer, cfg.DB, cfg.Metrics)))

	if cfg.AdminKey != "" {
		admin := func(h returnHandler) http.Handler {
			return m(adminMiddleware(h, cfg.AdminKey))
		}
		r.Path("/admin/cache/flush").Methods("POST").Handler(admin(handleFlushCache(content)))
		if cfg.DB != nil {
			r.Path("/admin/submissions/{id:[0-9]+}").Methods("GET").Handler(admin(txMiddleware(handleReadSubmission, cfg.DB)))
		}
	}

	if cfg.Chat != nil {
		r.Path("/chat/sessions").Methods("POST").Handler(m(handleCreateChatSession(cfg.Chat)))
		r.Path("/chat/sessions/{id}").Methods("GET").Handler(m(handleReadChatSession(cfg.Chat)))
		r.Path("/chat/sessions/{id}/events").Methods("POST").Handler(m(handleChatEvent(cfg.Chat)))

		// WebSocket endpoint (no JSON middleware)
		r.Path("/chat/ws").Methods("GET").Handler(cfg.Chat)
	}

	r.Path("/metrics").Methods("GET").Handler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{DisableCompression: true}))

	r.NotFoundHandler = m(notFoundHandler)
	r.MethodNotAllowedHandler = m(methodNotAllowedHandler)

	corsOpts := []handlers.CORSOption{
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "X-Admin-Key"}),
	}
	if len(cfg.AllowedOrigins) > 0 {
		corsOpts = append(corsOpts, handlers.AllowedOrigins(cfg.AllowedOrigins))
	}

	var h http.Handler = r
	if cfg.Prefix != "" {
		h = http.StripPrefix(cfg.Prefix, r)
	}

	return handlers.CompressHandler(handlers.CORS(corsOpts...)(h))
}
