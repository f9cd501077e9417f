package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/wellszhang/mcschat/internal/config"
	"github.com/wellszhang/mcschat/internal/engine"
	"github.com/wellszhang/mcschat/internal/history"
	"github.com/wellszhang/mcschat/internal/prompts"
	"github.com/wellszhang/mcschat/internal/providers"
	"github.com/wellszhang/mcschat/internal/sink"
)

func main() {
	// Load .env if it exists; real env vars win.
	_ = godotenv.Load()

	fs := flag.NewFlagSet("mcschat", flag.ExitOnError)
	dataFlag := fs.String("data", "", "Data directory for config and transcripts (default: user config dir)")
	noThinking := fs.Bool("no-thinking", false, "Disable the simulated thinking stream")
	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	if err := run(context.Background(), *dataFlag, *noThinking); err != nil {
		log.Fatalf("mcschat: %v", err)
	}
}

func run(ctx context.Context, dataDir string, noThinking bool) error {
	var mgr *config.Manager
	if dataDir != "" {
		mgr = config.NewManagerAt(dataDir)
	} else {
		var err error
		mgr, err = config.NewManager()
		if err != nil {
			return err
		}
		dataDir = filepath.Dir(mgr.GetConfigPath())
	}

	cfg, err := mgr.Load()
	if err != nil {
		return err
	}
	applyConfigToEnv(cfg)

	tg, model, err := providers.NewTextGeneratorFromEnv()
	if err != nil {
		// The thinking engine degrades to templates; replies need a backend.
		log.Printf("no LLM backend available: %v", err)
		log.Printf("thinking will run on templates; replies are disabled until a provider is configured")
	} else {
		log.Printf("chat ready (model: %s)", model)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	dbPath := filepath.Join(dataDir, "chat.db")

	store, err := history.NewStore(ctx, dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	index, err := history.NewTranscriptIndex(dbPath)
	if err != nil {
		return err
	}
	defer index.Close()

	conversationID := uuid.NewString()
	recaller := history.NewRecaller(store, conversationID, cfg.HistoryTurns)
	term := sink.NewTerminal(os.Stdout)

	var eng *engine.Engine
	if cfg.ThinkingEnabled && !noThinking {
		eng = engine.New(term, tg, recaller, nil, cfg.EngineOptions())
	}

	r := &repl{
		store:          store,
		index:          index,
		summarizer:     history.NewSummarizer(tg),
		engine:         eng,
		sink:           term,
		tg:             tg,
		recaller:       recaller,
		conversationID: conversationID,
	}

	// Hot reload only touches what can change mid-run without tearing the
	// engine down: the pacing knobs apply from the next session onward.
	watcher, err := config.NewWatcher(mgr, func(fresh *config.Config) {
		log.Printf("config reloaded from %s", mgr.GetConfigPath())
		r.swapEngine(fresh)
	})
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		log.Printf("config watcher unavailable: %v", err)
	} else {
		defer watcher.Stop()
	}

	return r.loop(ctx)
}

// applyConfigToEnv bridges config.json into the env-driven provider factory.
// Explicit environment variables take precedence over the file.
func applyConfigToEnv(cfg *config.Config) {
	if cfg.LLMProvider != "" && os.Getenv("LLM_PROVIDER") == "" {
		os.Setenv("LLM_PROVIDER", cfg.LLMProvider)
	}
	if cfg.Model != "" {
		key := strings.ToUpper(cfg.LLMProvider) + "_MODEL"
		if cfg.LLMProvider != "" && os.Getenv(key) == "" {
			os.Setenv(key, cfg.Model)
		}
	}
	if cfg.BaseURL != "" && os.Getenv("OPENAI_BASE_URL") == "" {
		os.Setenv("OPENAI_BASE_URL", cfg.BaseURL)
	}
}

type repl struct {
	store          *history.Store
	index          *history.TranscriptIndex
	summarizer     *history.Summarizer
	sink           *sink.Terminal
	tg             engine.TextGenerator
	recaller       *history.Recaller
	conversationID string

	mu     sync.Mutex
	engine *engine.Engine
}

// swapEngine rebuilds the thinking engine with fresh pacing options. An
// active session keeps its options; the swap is skipped until the engine is
// idle again.
func (r *repl) swapEngine(fresh *config.Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.engine == nil || r.engine.IsActive() {
		return
	}
	r.engine = engine.New(r.sink, r.tg, r.recaller, nil, fresh.EngineOptions())
}

func (r *repl) currentEngine() *engine.Engine {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine
}

func (r *repl) loop(ctx context.Context) error {
	s := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !s.Scan() {
			break
		}
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/quit" || line == "/exit":
			return nil
		case strings.HasPrefix(line, "/search "):
			r.search(ctx, strings.TrimPrefix(line, "/search "))
		case line == "/title":
			r.title(ctx)
		default:
			r.ask(ctx, line)
		}
		fmt.Println()
	}
	return s.Err()
}

// ask runs one exchange: persist the question, stream simulated thinking
// while the real reply is in flight, then hand off and print the reply.
func (r *repl) ask(ctx context.Context, line string) {
	userMsg := history.NewMessage(r.conversationID, history.RoleUser, line)
	if err := r.store.Append(ctx, userMsg); err != nil {
		log.Printf("failed to persist question: %v", err)
	}
	if err := r.index.IndexMessage(userMsg); err != nil {
		log.Printf("failed to index question: %v", err)
	}

	eng := r.currentEngine()
	var sig *engine.CompletionSignal
	if eng != nil {
		sig = eng.Start(ctx, line)
	}

	reply, replyErr := r.requestReply(ctx, line)

	if eng != nil {
		eng.RequestNaturalTermination()
		if err := sig.Wait(ctx); err != nil {
			log.Printf("thinking handoff interrupted: %v", err)
		}
		r.sink.Finish()
	}

	if replyErr != nil {
		log.Printf("error: %v", replyErr)
		return
	}
	fmt.Println(reply)

	assistantMsg := history.NewMessage(r.conversationID, history.RoleAssistant, reply)
	if err := r.store.Append(ctx, assistantMsg); err != nil {
		log.Printf("failed to persist reply: %v", err)
	}
	if err := r.index.IndexMessage(assistantMsg); err != nil {
		log.Printf("failed to index reply: %v", err)
	}
}

func (r *repl) requestReply(ctx context.Context, line string) (string, error) {
	if r.tg == nil {
		return "", fmt.Errorf("no LLM provider configured (set LLM_PROVIDER and its API key)")
	}
	prompt, err := prompts.BuildReply(prompts.Detect(line), line, r.recaller.RecentContextSummary(ctx))
	if err != nil {
		return "", err
	}
	return r.tg.Generate(ctx, prompt)
}

func (r *repl) search(ctx context.Context, query string) {
	results, err := r.index.Search(query, r.conversationID, 5)
	if err != nil {
		log.Printf("search failed: %v", err)
		return
	}
	if len(results) == 0 {
		fmt.Println("no matches")
		return
	}
	for _, res := range results {
		msg, err := r.store.Get(ctx, res.MessageID)
		if err != nil {
			log.Printf("failed to load hit %s: %v", res.MessageID, err)
			continue
		}
		fmt.Printf("[%.2f] %s: %s\n", res.Score, msg.Role, firstLine(msg.Content))
	}
}

func (r *repl) title(ctx context.Context) {
	if r.tg == nil {
		fmt.Println("no LLM provider configured")
		return
	}
	msgs, err := r.store.Recent(ctx, r.conversationID, 20)
	if err != nil {
		log.Printf("failed to load history: %v", err)
		return
	}
	title, err := r.summarizer.GenerateTitle(ctx, msgs)
	if err != nil {
		log.Printf("failed to generate title: %v", err)
		return
	}
	fmt.Println(title)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
