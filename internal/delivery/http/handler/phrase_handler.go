package handler

import (
	"net/http"

	"holo-api/internal/usecase"
	"holo-api/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type PhraseHandler struct {
	phraseUsecase usecase.PhraseUsecase
	log           *logrus.Logger
}

func NewPhraseHandler(phraseUsecase usecase.PhraseUsecase, log *logrus.Logger) *PhraseHandler {
	return &PhraseHandler{
		phraseUsecase: phraseUsecase,
		log:           log,
	}
}

// GetRandomPhrase returns a random motivational phrase
// @Summary Random phrase
// @Description Falls back to the general set when the type has no phrases
// @Tags Phrases
// @Produce json
// @Param tcaType path string true "TCA type (anorexia, bulimia, general)"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /phrases/{tcaType} [get]
func (h *PhraseHandler) GetRandomPhrase(w http.ResponseWriter, r *http.Request) {
	phrase, err := h.phraseUsecase.RandomPhrase(r.Context(), mux.Vars(r)["tcaType"])
	if err != nil {
		writeError(w, h.log, err, "Failed to get phrase")
		return
	}

	response.Success(w, http.StatusOK, "Phrase retrieved successfully", phrase)
}
