package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"rag_reply_bot/internal/analytics"
	"rag_reply_bot/internal/bot"
	"rag_reply_bot/internal/config"
	"rag_reply_bot/internal/generate"
	"rag_reply_bot/internal/index"
	"rag_reply_bot/internal/logger"
	"rag_reply_bot/internal/personality"
	"rag_reply_bot/internal/provider"
	"rag_reply_bot/internal/storage"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment as-is")
	}

	ctx := context.Background()

	// Load configuration from config.yaml
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		fmt.Printf("Error loading config.yaml: %v\n", err)
		return
	}

	if err := logger.InitLogger(cfg.Log); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		return
	}

	engine, err := buildBot(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to build reply engine")
	}

	runREPL(ctx, engine)
}

func buildBot(ctx context.Context, cfg *config.YAMLConfig) (*bot.Bot, error) {
	embedder, err := provider.NewOllamaEmbedder(cfg.LLM.EmbeddingModel)
	if err != nil {
		return nil, err
	}
	chat, err := provider.NewChatCompleter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewExampleStore(cfg.TrainingDataFile())
	if err != nil {
		return nil, err
	}

	// Conversation memory lives in Redis when REDIS_URL is set, otherwise
	// in a local JSON document.
	var repo storage.ConversationRepository
	if os.Getenv("REDIS_URL") != "" {
		repo, err = storage.NewRedisConversationRepository(ctx, cfg.ConversationTTL())
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("Conversation memory backed by Redis")
	} else {
		repo, err = storage.NewFileConversationRepository(cfg.ConversationsFile())
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("Conversation memory backed by local file")
	}

	conversations := storage.NewConversationMemory(repo, cfg.Memory.MaxConversationTurns)
	memory, err := storage.NewLongTermMemory(cfg.MemoryFile())
	if err != nil {
		return nil, err
	}
	stats, err := analytics.NewAnalytics(cfg.AnalyticsFile())
	if err != nil {
		return nil, err
	}

	return bot.New(ctx, bot.Options{
		Store:         store,
		Index:         index.NewSimilarityIndex(embedder, cfg.VectorStoreDir()),
		Conversations: conversations,
		Memory:        memory,
		Analytics:     stats,
		Personalities: personality.NewRegistry(),
		Generator:     generate.NewReplyGenerator(chat, nil),
		MaxResults:    cfg.Retrieval.MaxResults,
		MinScore:      cfg.Retrieval.SimilarityThreshold,
	})
}

func runREPL(ctx context.Context, engine *bot.Bot) {
	userID := os.Getenv("USER_ID")
	if userID == "" {
		userID = "default"
	}

	fmt.Println("Reply engine ready. Type a message, or /help for commands.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			return
		}
		if strings.HasPrefix(line, "/") {
			handleCommand(ctx, engine, userID, line)
			continue
		}

		reply, err := engine.GetReply(ctx, line, userID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		fmt.Printf("🤖 %s\n", reply)
	}
}

func handleCommand(ctx context.Context, engine *bot.Bot, userID, line string) {
	cmd, rest, _ := strings.Cut(line, " ")
	switch cmd {
	case "/help":
		fmt.Println("Commands:")
		fmt.Println("  /train <input> | <reply>                 add a training example")
		fmt.Println("  /correct <query> | <original> | <fixed>  correct a past reply")
		fmt.Println("  /remember <fact>                         store a long-term fact")
		fmt.Println("  /personality <key>                       switch personality")
		fmt.Println("  /personalities                           list personalities")
		fmt.Println("  /examples                                list training examples")
		fmt.Println("  /stats                                   show analytics")
		fmt.Println("  /clear                                   clear your conversation")
		fmt.Println("  /quit                                    exit")

	case "/train":
		parts := splitParts(rest, 2)
		if parts == nil {
			fmt.Println("Usage: /train <input> | <reply>")
			return
		}
		if err := engine.Train(ctx, parts[0], parts[1], "en"); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println("✅ Example added")

	case "/correct":
		parts := splitParts(rest, 3)
		if parts == nil {
			fmt.Println("Usage: /correct <query> | <original> | <corrected>")
			return
		}
		ack, err := engine.Correct(ctx, parts[0], parts[1], parts[2], userID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println(ack)

	case "/remember":
		if rest == "" {
			fmt.Println("Usage: /remember <fact>")
			return
		}
		if err := engine.AddMemory(userID, rest); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println("✅ Remembered")

	case "/personality":
		if err := engine.SetPersonality(strings.TrimSpace(rest)); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Personality set to %s\n", strings.TrimSpace(rest))

	case "/personalities":
		for _, p := range engine.ListPersonalities() {
			fmt.Printf("  %-14s %s: %s\n", p.Key, p.Name, p.Description)
		}

	case "/examples":
		examples := engine.GetTrainingExamples()
		fmt.Printf("%d training examples:\n", len(examples))
		for i, ex := range examples {
			fmt.Printf("  [%d] %s -> %s (%s)\n", i+1, ex.Input, ex.Reply, ex.Language)
		}

	case "/stats":
		stats := engine.GetStats()
		fmt.Printf("Total messages:      %d\n", stats.TotalMessages)
		fmt.Printf("Unique users:        %d\n", stats.UniqueUsers)
		fmt.Printf("Top moods:           %v\n", stats.TopMoods)
		fmt.Printf("Top languages:       %v\n", stats.TopLanguages)
		fmt.Printf("Recent corrections:  %d\n", stats.RecentCorrectionsCount)

	case "/clear":
		if err := engine.ClearConversation(ctx, userID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println("✅ Conversation cleared")

	default:
		fmt.Printf("Unknown command: %s (try /help)\n", cmd)
	}
}

// splitParts splits "a | b | c" into exactly n trimmed parts, nil on
// mismatch.
func splitParts(s string, n int) []string {
	parts := strings.Split(s, "|")
	if len(parts) != n {
		return nil
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return nil
		}
	}
	return parts
}
