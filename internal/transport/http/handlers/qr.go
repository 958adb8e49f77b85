package handlers

import (
	"net/http"

	"github.com/alexcarden/qrgen/internal/qr"
	"github.com/alexcarden/qrgen/internal/transport/http/dto"
	"github.com/alexcarden/qrgen/internal/transport/http/response"
)

type QRHandler struct{}

func NewQRHandler() *QRHandler {
	return &QRHandler{}
}

// Generate handles POST /api/v1/qr/generate. The endpoint is stateless and
// requires no authentication.
func (h *QRHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req dto.QRCodeRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	image, err := qr.Generate(req.Data, qr.Options{
		Scale:     req.Size,
		FillColor: req.FillColor,
		BackColor: req.BackColor,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.QRCodeData{QRCode: image, Format: "png"})
}
