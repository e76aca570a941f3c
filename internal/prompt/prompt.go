// ABOUTME: Assembles the model input from template, retrieved context, and history
// ABOUTME: The system template is a fixed, versioned Portuguese string
package prompt

import (
	"fmt"
	"strings"

	"github.com/heulosofia/chatbot/internal/llm"
	"github.com/heulosofia/chatbot/internal/models"
)

// Version identifies the system template. Bump it whenever the template
// text changes.
const Version = "v2"

// Refusal is the exact phrase the model is told to use when the answer is
// not grounded in the supplied material.
const Refusal = "Desculpe, não tenho essa informação."

const systemTemplate = `Você é um assistente especializado em heulosofia, a filosofia da felicidade e do bem-estar. Responda sempre em português, mantendo um tom acolhedor e conversacional.

Responda usando somente o contexto e o histórico da conversa abaixo. Se a resposta não estiver nesse material, diga explicitamente "` + Refusal + `" em vez de inventar uma resposta.

Contexto:
%s

Histórico da conversa:
%s`

const (
	emptyContext = "(nenhum documento relevante encontrado)"
	emptyHistory = "(início da conversa)"
)

// ContextBlock renders the retrieved chunks as the context section: one
// "Source:/Content:" stanza per chunk, separated by blank lines.
func ContextBlock(chunks []models.Chunk) string {
	if len(chunks) == 0 {
		return emptyContext
	}
	stanzas := make([]string, len(chunks))
	for i, c := range chunks {
		stanzas[i] = fmt.Sprintf("Source: %s\nContent: %s", c.Metadata.Source, c.Text)
	}
	return strings.Join(stanzas, "\n\n")
}

// HistoryBlock renders past turns as a plain transcript.
func HistoryBlock(turns []models.Turn) string {
	if len(turns) == 0 {
		return emptyHistory
	}
	lines := make([]string, 0, len(turns)*2)
	for _, t := range turns {
		lines = append(lines, "Humano: "+t.Human)
		lines = append(lines, "Assistente: "+t.Assistant)
	}
	return strings.Join(lines, "\n")
}

// Assemble builds the chat messages for one turn: the filled system
// template followed by the user's question.
func Assemble(question string, retrieved []models.Chunk, history []models.Turn) []llm.Message {
	system := fmt.Sprintf(systemTemplate, ContextBlock(retrieved), HistoryBlock(history))
	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: question},
	}
}
