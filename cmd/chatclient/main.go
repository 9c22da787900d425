package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/60cod/ygna-chat/api"
	"github.com/60cod/ygna-chat/chatbot"
	"github.com/60cod/ygna-chat/query"
	"github.com/gorilla/websocket"
)

const help = `Commands:
  /articles /projects /about /contact   open a section
  /yes /no                              confirm or cancel sending
  /b <label>                            press a button
  /return                               back to the main menu
  /list articles|projects               browse content
  /next /prev                           page through content
  /quit                                 exit
Anything else is sent as a message.`

// renderer prints new log entries as state frames arrive
type renderer struct {
	mu      sync.Mutex
	out     io.Writer
	printed map[string]bool
}

func (r *renderer) state(s *chatbot.State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, msg := range s.Messages {
		if r.printed[msg.ID] {
			continue
		}
		r.printed[msg.ID] = true

		who := "You"
		if msg.IsBot {
			who = "Bot"
		}
		if msg.IsFullWidth {
			fmt.Fprintf(r.out, "[%s] --- %s --- (try /list %s)\n", msg.Timestamp, msg.SelectedSection, strings.ToLower(string(msg.SelectedSection)))
			continue
		}
		fmt.Fprintf(r.out, "[%s] %s: %s\n", msg.Timestamp, who, msg.Content)
		if len(msg.Buttons) > 0 {
			fmt.Fprintf(r.out, "        [%s]\n", strings.Join(msg.Buttons, "] ["))
		}
	}

	if s.ShowInitialButtons {
		names := make([]string, len(chatbot.Sections))
		for i, section := range chatbot.Sections {
			names[i] = string(section)
		}
		fmt.Fprintf(r.out, "        [%s]\n", strings.Join(names, "] ["))
	}
	if s.ContactStep == chatbot.ContactConfirmation && !s.IsEmailSending {
		fmt.Fprintln(r.out, "        /yes to send, /no to cancel")
	}
	if s.IsEmailSending {
		fmt.Fprintln(r.out, "        Sending...")
	}
}

func (r *renderer) line(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, format+"\n", args...)
}

// parseCommand maps a line of input to an event. ok is false for lines that
// are not conversation events.
func parseCommand(input string) (ev chatbot.Event, ok bool) {
	if !strings.HasPrefix(input, "/") {
		return chatbot.Event{Type: chatbot.EventSend, Value: input}, true
	}

	cmd, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "/articles":
		return chatbot.Event{Type: chatbot.EventSection, Value: string(chatbot.SectionArticles)}, true
	case "/projects":
		return chatbot.Event{Type: chatbot.EventSection, Value: string(chatbot.SectionProjects)}, true
	case "/about":
		return chatbot.Event{Type: chatbot.EventSection, Value: string(chatbot.SectionAbout)}, true
	case "/contact":
		return chatbot.Event{Type: chatbot.EventSection, Value: string(chatbot.SectionContact)}, true
	case "/yes":
		return chatbot.Event{Type: chatbot.EventConfirm}, true
	case "/no":
		return chatbot.Event{Type: chatbot.EventCancel}, true
	case "/return":
		return chatbot.Event{Type: chatbot.EventReturn}, true
	case "/b":
		if arg == "" {
			return chatbot.Event{}, false
		}
		return chatbot.Event{Type: chatbot.EventButton, Value: arg}, true
	}
	return chatbot.Event{}, false
}

// browser pages through content listings fetched from the HTTP API
type browser struct {
	base     string
	articles *query.Carousel[*api.Article]
	projects *query.Carousel[*api.Project]
	showing  string
}

type listResponse[T any] struct {
	Success bool   `json:"success"`
	Data    []T    `json:"data"`
	Error   string `json:"error"`
}

func fetch[T any](u string) ([]T, error) {
	resp, err := http.Get(u)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var body listResponse[T]
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !body.Success {
		return nil, fmt.Errorf("request failed (status %d): %s", resp.StatusCode, body.Error)
	}
	return body.Data, nil
}

func (b *browser) list(kind string) error {
	switch kind {
	case "articles":
		articles, err := fetch[*api.Article](b.base + "/articles")
		if err != nil {
			return err
		}
		b.articles = query.NewCarousel(articles, query.DefaultPerPage)
	case "projects":
		projects, err := fetch[*api.Project](b.base + "/projects")
		if err != nil {
			return err
		}
		b.projects = query.NewCarousel(projects, query.DefaultPerPage)
	default:
		return fmt.Errorf("unknown listing %q", kind)
	}
	b.showing = kind
	return nil
}

func (b *browser) move(forward bool) bool {
	switch {
	case b.showing == "articles" && b.articles.CanNavigate():
		if forward {
			b.articles.Next()
		} else {
			b.articles.Prev()
		}
	case b.showing == "projects" && b.projects.CanNavigate():
		if forward {
			b.projects.Next()
		} else {
			b.projects.Prev()
		}
	default:
		return false
	}
	return true
}

func (b *browser) render() string {
	var sb strings.Builder
	switch b.showing {
	case "articles":
		if !b.articles.HasItems() {
			return "No articles yet."
		}
		for _, a := range b.articles.Items() {
			fmt.Fprintf(&sb, "  %s  %s (%s, %d min)\n", a.PublishedAt, a.Title, a.Category, a.ReadTime)
		}
		fmt.Fprintf(&sb, "  page %d/%d", b.articles.Current()+1, b.articles.TotalPages())
	case "projects":
		if !b.projects.HasItems() {
			return "No projects yet."
		}
		for _, p := range b.projects.Items() {
			fmt.Fprintf(&sb, "  %s [%s] %s\n", p.Title, p.Status, strings.Join(p.TechStack, ", "))
		}
		fmt.Fprintf(&sb, "  page %d/%d", b.projects.Current()+1, b.projects.TotalPages())
	default:
		return "Nothing listed. Try /list articles"
	}
	return sb.String()
}

func main() {
	server := flag.String("server", "http://localhost:8080", "Server URL (http/https)")
	prefix := flag.String("prefix", "", "URL prefix the API is mounted at")
	sessionID := flag.String("session", "", "Session ID to resume (optional)")
	flag.Parse()

	base := strings.TrimSuffix(*server, "/") + *prefix

	// Convert HTTP URL to WebSocket URL
	wsURL := strings.Replace(base, "http://", "ws://", 1)
	wsURL = strings.Replace(wsURL, "https://", "wss://", 1)
	wsURL += "/chat/ws"
	if *sessionID != "" {
		wsURL += "?session_id=" + url.QueryEscape(*sessionID)
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		fmt.Printf("WebSocket connection failed: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	r := &renderer{out: os.Stdout, printed: make(map[string]bool)}
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			var msg chatbot.ServerMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					r.line("Connection closed: %v", err)
				}
				return
			}

			switch msg.Type {
			case chatbot.MessageTypeSession:
				r.line("(Session ID: %s)", msg.SessionID)
				r.state(msg.State)
			case chatbot.MessageTypeState:
				r.state(msg.State)
			case chatbot.MessageTypeOpenLink:
				r.line("Open: %s", msg.URL)
			case chatbot.MessageTypeError:
				r.line("Error: %s", msg.Error)
			}
		}
	}()

	b := &browser{base: base}
	reader := bufio.NewReader(os.Stdin)
	r.line("%s", help)

	for {
		input, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				fmt.Println("Goodbye!")
				return
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		cmd, arg, _ := strings.Cut(input, " ")
		cmd = strings.ToLower(cmd)
		switch cmd {
		case "/quit", "/exit":
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			<-done
			fmt.Println("Goodbye!")
			return
		case "/help":
			r.line("%s", help)
			continue
		case "/list":
			if err := b.list(strings.TrimSpace(arg)); err != nil {
				r.line("Error: %v", err)
				continue
			}
			r.line("%s", b.render())
			continue
		case "/next", "/prev":
			if !b.move(cmd == "/next") {
				r.line("Nothing to page through")
				continue
			}
			r.line("%s", b.render())
			continue
		}

		ev, ok := parseCommand(input)
		if !ok {
			r.line("Unknown command. Type /help for commands.")
			continue
		}

		if err := conn.WriteJSON(chatbot.ClientMessage{Type: chatbot.ClientTypeEvent, Event: &ev}); err != nil {
			fmt.Printf("Failed to send event: %v\n", err)
			return
		}
	}
}
