package handlers

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/wolfman30/eventpulse-api/internal/imagegen"
	"github.com/wolfman30/eventpulse-api/pkg/logging"
)

type imageGenerator interface {
	Generate(ctx context.Context, req imagegen.Request) (*imagegen.Image, error)
}

// ImageHandler serves POST /api/generate-image.
type ImageHandler struct {
	generator imageGenerator
	logger    *logging.Logger
}

func NewImageHandler(generator imageGenerator, logger *logging.Logger) *ImageHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ImageHandler{generator: generator, logger: logger}
}

// Generate returns the image as an attachment. Nothing is written until the
// full image is in hand, so failures always produce a JSON body.
func (h *ImageHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req imagegen.Request
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err.Error())
		return
	}

	img, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		message := "An unexpected error occurred"
		if imagegen.IsUpstream(err) {
			message = "Failed to generate image"
		}
		writeError(w, http.StatusInternalServerError, message, err.Error())
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": img.Filename}))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img.Data); err != nil {
		h.logger.Warn("image write failed", "error", err)
	}
}
