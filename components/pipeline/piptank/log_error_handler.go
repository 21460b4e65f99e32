package piptank

import "github.com/codeking/oilfox-hub/components/core"

// logErrorHandler logs failed cycles with the account identifier.
//
// Remarks:
//   - The password never reaches the log.
type logErrorHandler struct {
	email string
}

func (h *logErrorHandler) HandleError(err error) {
	core.Log.Errorf("tank-sync: synchronization cycle failed: account=%s err=%v", h.email, err)
}
