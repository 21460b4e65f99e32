package piphttp

import (
	"net/http"

	"github.com/codeking/oilfox-hub/components/http/htcore"
	"github.com/codeking/oilfox-hub/components/status"
)

// HealthHandler reports the current instance health code.
type HealthHandler struct {
	holder *status.Holder
}

// NewHealthHandler is a HealthHandler initialization.
func NewHealthHandler(holder *status.Holder) *HealthHandler {
	return &HealthHandler{
		holder: holder,
	}
}

// ServeHTTP writes the health code as JSON.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	code := h.holder.Get()

	htcore.WriteJSON(w, struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
	}{
		Code:   int(code),
		Status: code.String(),
	})
}
