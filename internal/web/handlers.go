// ABOUTME: JSON API handlers: chat, search, upload, contact, clear-history
// ABOUTME: Maps pipeline errors to status codes; no internals leak to clients
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/heulosofia/chatbot/internal/bot"
	"github.com/heulosofia/chatbot/internal/loader"
)

// 10 MB cap on uploaded knowledge-base files.
const maxUploadSize = 10 << 20

type chatRequest struct {
	Message string `json:"message"`
}

type searchRequest struct {
	Query string `json:"query"`
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("web: encoding response: %v", err)
	}
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Requisição inválida"})
		return
	}
	s.answer(w, r, req.Message, "Mensagem é obrigatória")
}

// handleSearch serves a different UI surface with the same pipeline; only
// the request field name differs.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Requisição inválida"})
		return
	}
	s.answer(w, r, req.Query, "Consulta é obrigatória")
}

func (s *Server) answer(w http.ResponseWriter, r *http.Request, question, emptyMsg string) {
	sessionID := s.codec.sessionID(w, r)

	answer, err := s.bot.Turn(r.Context(), sessionID, question)
	switch {
	case errors.Is(err, bot.ErrEmptyMessage):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: emptyMsg})
	case err != nil:
		log.Printf("web: chat turn for session %s: %v", sessionID, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Erro interno do servidor"})
	default:
		writeJSON(w, http.StatusOK, answer)
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{Message: "Arquivo muito grande ou requisição inválida"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{Message: "Nenhum arquivo enviado"})
		return
	}
	defer file.Close()

	if !loader.Supported(header.Filename) {
		writeJSON(w, http.StatusBadRequest, statusResponse{Message: "Tipo de arquivo não suportado; envie .txt ou .pdf"})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("web: reading upload %s: %v", header.Filename, err)
		writeJSON(w, http.StatusInternalServerError, statusResponse{Message: "Falha ao ler o arquivo"})
		return
	}
	if len(data) == 0 {
		writeJSON(w, http.StatusBadRequest, statusResponse{Message: "Arquivo vazio"})
		return
	}

	name := filepath.Base(header.Filename)

	// save_to_default=1 persists the file into the knowledge-base directory
	// so the next startup re-ingests it; otherwise it is only indexed for
	// this process lifetime.
	if r.FormValue("save_to_default") == "1" {
		if err := os.MkdirAll(s.cfg.DocsDir, 0o755); err == nil {
			err = os.WriteFile(filepath.Join(s.cfg.DocsDir, name), data, 0o644)
		}
		if err != nil {
			log.Printf("web: saving upload %s: %v", name, err)
			writeJSON(w, http.StatusInternalServerError, statusResponse{Message: "Falha ao salvar o arquivo"})
			return
		}
	}

	doc, err := loader.FromBytes(name, data, s.takeSeq())
	if err != nil {
		// PDF extraction failure: the document exists but has no text.
		log.Printf("web: %v", err)
	}

	chunks := s.splitter.Split(doc)
	added, err := s.index.Add(r.Context(), chunks)
	if err != nil {
		log.Printf("web: indexing upload %s: %v", name, err)
		writeJSON(w, http.StatusInternalServerError, statusResponse{Message: "Falha ao indexar o arquivo"})
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Success: true,
		Message: fmt.Sprintf("Arquivo %s indexado (%d trechos)", name, added),
	})
}

// handleContact only records the submission; there is no persistence or
// mail delivery behind it.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Requisição inválida"})
		return
	}

	log.Printf("contact: name=%q email=%q message=%q", req.Name, req.Email, req.Message)
	writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: "Mensagem enviada com sucesso!"})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := s.codec.sessionID(w, r)
	s.bot.ClearHistory(sessionID)
	writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: "Histórico limpo"})
}
