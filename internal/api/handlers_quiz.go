package api

import (
	"context"
	"net/http"

	"github.com/abhisek/quizify/internal/quizgen"
)

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizgen.Request
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if s.opts.GenerationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.GenerationTimeout)
		defer cancel()
	}

	doc, err := s.gen.Generate(ctx, req)
	if err != nil {
		s.log.Warn("quiz extraction failed", "difficulty", req.Difficulty, "error", err)
		writeGenerationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, doc.ToWire())
}
