package piphttp

import (
	"net/http"

	"github.com/codeking/oilfox-hub/components/http/htcore"
	"github.com/codeking/oilfox-hub/components/storage/stsink"
)

// TankHandler lists reconciled device groups and their named values.
type TankHandler struct {
	sink *stsink.Sink
}

// NewTankHandler is a TankHandler initialization.
func NewTankHandler(sink *stsink.Sink) *TankHandler {
	return &TankHandler{
		sink: sink,
	}
}

type tankListItem struct {
	stsink.GroupInfo
	Values []stsink.ValueInfo `json:"values"`
}

// ServeHTTP writes all groups with their values as JSON.
func (h *TankHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	groups, err := h.sink.Groups()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	items := make([]tankListItem, 0, len(groups))

	for _, group := range groups {
		values, err := h.sink.Values(group.Handle)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)

			return
		}

		items = append(items, tankListItem{
			GroupInfo: group,
			Values:    values,
		})
	}

	htcore.WriteJSON(w, items)
}
