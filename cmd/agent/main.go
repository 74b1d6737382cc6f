package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"

	"github.com/m2tx/answer_agent/internal/application"
	"github.com/m2tx/answer_agent/internal/config"
)

// Usage:
//
//	agent "What is 6 multiplied by 7?"
//	agent < questions.txt
func main() {
	ancli.SetupSlog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		ancli.Errf("%v\n", err)
		os.Exit(1)
	}

	a, err := application.NewAgent(ctx, cfg)
	if err != nil {
		ancli.Errf("%v\n", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 {
		fmt.Println(a.Answer(ctx, strings.Join(os.Args[1:], " ")))
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		fmt.Println(a.Answer(ctx, question))
	}
	if err := scanner.Err(); err != nil {
		ancli.Errf("read questions: %v\n", err)
		os.Exit(1)
	}
}
