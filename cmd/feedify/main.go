// feedify 命令行客户端：登录后对一个空间的反馈做流式摘要，并逐段打印
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/feedify/backend/internal/apiclient"
	appSummary "github.com/feedify/backend/internal/application/summary"
	domainSummary "github.com/feedify/backend/internal/domain/summary"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	server := flag.String("server", envOr("FEEDIFY_SERVER", "http://localhost:8080/api/v1"), "Feedify API base URL")
	user := flag.String("user", os.Getenv("FEEDIFY_USER"), "username or email")
	password := flag.String("password", os.Getenv("FEEDIFY_PASSWORD"), "account password")
	space := flag.String("space", "", "space to summarize")
	noPace := flag.Bool("no-pace", false, "print fragments as soon as they arrive")
	flag.Parse()

	if *user == "" || *password == "" || *space == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var pacer domainSummary.Pacer = domainSummary.NewRandomPacer()
	if *noPace {
		pacer = domainSummary.NoPacer{}
	}

	if err := run(ctx, apiclient.New(*server), *user, *password, *space, pacer); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run 登录、读取空间反馈并流式打印摘要
func run(ctx context.Context, client *apiclient.Client, user, password, space string, pacer domainSummary.Pacer) error {
	if _, err := client.SignIn(ctx, user, password); err != nil {
		return fmt.Errorf("sign in: %w", err)
	}

	messages, err := client.ListMessages(ctx, space)
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}
	contents := make([]string, 0, len(messages))
	for _, m := range messages {
		contents = append(contents, m.Content)
	}
	if len(contents) == 0 {
		return errors.New("No messages to summarize")
	}

	body, err := client.StreamSummary(ctx, contents)
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 400 {
			return errors.New("No messages to summarize")
		}
		return fmt.Errorf("Summarization failed: %w", err)
	}
	defer body.Close()

	session := domainSummary.NewSession()
	err = appSummary.Accumulate(ctx, body, session, pacer, func(fragment string) {
		fmt.Print(fragment)
	})
	fmt.Println()
	if err != nil {
		// 已打印的片段保留
		return fmt.Errorf("Summarization failed: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
