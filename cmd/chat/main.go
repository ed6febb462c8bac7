// Package main implements an interactive terminal chat for the Bunfree
// guide engine. It runs the same query pipeline as the API server.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/bunfree-ai/bunfree-engine/engine/classify"
	"github.com/bunfree-ai/bunfree-engine/engine/pipeline"
	"github.com/bunfree-ai/bunfree-engine/engine/respond"
	"github.com/bunfree-ai/bunfree-engine/engine/search"
	"github.com/bunfree-ai/bunfree-engine/engine/semantic"
	"github.com/bunfree-ai/bunfree-engine/pkg/llm"
)

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	qdrantAddr := envOr("QDRANT_URL", "localhost:6334")
	qdrantAPIKey := os.Getenv("QDRANT_API_KEY")
	llmAPIKey := os.Getenv("LLM_API_KEY")
	embedAPIKey := os.Getenv("EMBEDDING_API_KEY")
	if llmAPIKey == "" || embedAPIKey == "" {
		fmt.Fprintln(os.Stderr, "LLM_API_KEY and EMBEDDING_API_KEY are required")
		os.Exit(1)
	}

	store, err := semantic.New(qdrantAddr, qdrantAPIKey)
	if err != nil {
		logger.Error("qdrant connect failed", "err", err)
		os.Exit(1)
	}
	defer store.Close()

	chatClient := llm.NewChatClient(llm.ChatConfig{
		APIKey:  llmAPIKey,
		BaseURL: os.Getenv("LLM_BASE_URL"),
		Model:   envOr("LLM_MODEL", "gpt-4o-mini"),
	}, logger)
	embedClient := llm.NewEmbedClient(llm.EmbedConfig{
		APIKey:     embedAPIKey,
		BaseURL:    os.Getenv("EMBEDDING_BASE_URL"),
		Model:      envOr("EMBEDDING_MODEL", "text-embedding-3-large"),
		Dimensions: 2048,
	})

	pipe := pipeline.New(
		classify.New(chatClient, logger),
		search.New(store, embedClient, logger),
		respond.New(chatClient, logger),
		nil,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Println("こんにちは！文学フリマ情報検索チャットを始めるよ！")
	fmt.Println("何か質問や検索したいことを入力してね。終わるときは \"exit\" って入力してね！")
	fmt.Println("例: \"SF系の面白い小説のサークルを教えて\" や \"短歌の本があるブースは？\"")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := scanner.Text()
		if strings.EqualFold(strings.TrimSpace(input), "exit") {
			break
		}
		fmt.Println("検索中...")
		resp := pipe.Respond(ctx, input)
		fmt.Printf("\n%s\n\n", resp.Message)
		if ctx.Err() != nil {
			break
		}
	}
	fmt.Println("バイバイ！またね！")
}
