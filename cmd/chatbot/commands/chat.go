// ABOUTME: Chat command: interactive terminal conversation with the assistant
// ABOUTME: One in-memory session; "q" ends the conversation
package commands

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heulosofia/chatbot/internal/bot"
	"github.com/heulosofia/chatbot/internal/session"
)

const greeting = "Olá! Estou aqui para te auxiliar com reflexões, insights e orientações relacionadas à heulosofia, que é a filosofia da felicidade e do bem-estar. Como posso contribuir para o seu bem-estar hoje?"

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Conversa com o assistente no terminal",
		RunE:  runChat,
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireOpenAIKey(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	p, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}

	sessions := session.NewStore(cfg.HistorySize)
	b := bot.New(p.index, p.client, sessions, cfg.TopK)
	sessionID := uuid.NewString()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, greeting)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "q" {
			break
		}
		if line == "" {
			continue
		}

		answer, err := b.Turn(ctx, sessionID, line)
		if err != nil {
			fmt.Fprintf(out, "erro: %v\n", err)
			continue
		}
		fmt.Fprintln(out, answer.Response)
	}
	return scanner.Err()
}
