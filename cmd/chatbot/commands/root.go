// ABOUTME: Root command for the chatbot CLI
// ABOUTME: Registers the serve, ingest, chat, and version subcommands
package commands

import (
	"github.com/spf13/cobra"
)

var configPath string

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chatbot",
		Short: "Assistente conversacional de heulosofia",
		Long: `Backend do assistente de heulosofia: ingere a base de conhecimento
(.txt e .pdf), indexa os trechos por similaridade semântica e responde
perguntas usando o contexto recuperado e o histórico da conversa.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Caminho do config.yaml (padrão: ./config.yaml)")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}
