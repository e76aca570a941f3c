// ABOUTME: Ingest command: dry-run over the knowledge base without provider calls
// ABOUTME: Reports per-document chunk counts so the corpus can be checked offline
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heulosofia/chatbot/internal/chunker"
	"github.com/heulosofia/chatbot/internal/loader"
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Inspeciona a base de conhecimento sem indexar",
		Long: `Carrega e fragmenta os documentos da base de conhecimento e mostra
quantos trechos cada arquivo produziria, sem chamar o provedor de embeddings.`,
		RunE: runIngest,
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	splitter, err := chunker.New(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return err
	}

	docs, err := loader.Load(cfg.DocsDir)
	if err != nil {
		return fmt.Errorf("loading knowledge base: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SEQ\tARQUIVO\tTIPO\tCARACTERES\tTRECHOS")
	total := 0
	for _, doc := range docs {
		kind := "txt"
		if doc.IsPDF {
			kind = "pdf"
		}
		chunks := splitter.Split(doc)
		total += len(chunks)
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n", doc.SequenceIndex, doc.Source, kind, len(doc.RawText), len(chunks))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d documentos, %d trechos\n", len(docs), total)
	return nil
}
