// ABOUTME: Serve command: ingest the knowledge base and run the HTTP server
// ABOUTME: Missing credentials or bad config stop the process before traffic
package commands

import (
	"context"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/heulosofia/chatbot/internal/bot"
	"github.com/heulosofia/chatbot/internal/session"
	"github.com/heulosofia/chatbot/internal/web"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Inicia o servidor web do assistente",
		Long: `Carrega a base de conhecimento, constrói o índice vetorial em memória
e expõe a API de chat em JSON junto com as páginas do site.`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireOpenAIKey(); err != nil {
		return err
	}

	p, err := buildPipeline(context.Background(), cfg)
	if err != nil {
		return err
	}

	sessions := session.NewStore(cfg.HistorySize)
	b := bot.New(p.index, p.client, sessions, cfg.TopK)

	server, err := web.NewServer(cfg, b, p.index, p.splitter, p.nextSeq)
	if err != nil {
		return err
	}

	log.Printf("chatbot server listening on %s", cfg.Addr)
	return http.ListenAndServe(cfg.Addr, server.Routes())
}
