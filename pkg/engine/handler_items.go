package engine

import (
	"errors"
	"net/http"

	"github.com/getmockd/itemd/pkg/httputil"
	"github.com/getmockd/itemd/pkg/item"
)

func (h *Handler) handleListItems(w http.ResponseWriter, r *http.Request) {
	filter, err := item.NewFilter(r.URL.Query().Get("name"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	items, err := h.store.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteOK(w, filter.Apply(items))
}

func (h *Handler) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	payload, err := h.readPayload(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	created, err := h.store.Create(r.Context(), payload.Name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.refreshItemCount(r.Context())
	httputil.WriteCreated(w, created)
}

func (h *Handler) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, err := item.ParseID(r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	it, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteOK(w, it)
}

func (h *Handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := item.ParseID(r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	payload, err := h.readPayload(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	updated, err := h.store.Update(r.Context(), id, payload.Name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteOK(w, updated)
}

func (h *Handler) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := item.ParseID(r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.refreshItemCount(r.Context())
	httputil.WriteNoContent(w)
}

// readPayload reads a bounded body and validates it as an item payload.
func (h *Handler) readPayload(w http.ResponseWriter, r *http.Request) (item.Payload, error) {
	body, err := httputil.ReadBody(w, r, httputil.MaxBodySize)
	if err != nil {
		if errors.Is(err, httputil.ErrBodyTooLarge) {
			return item.Payload{}, &item.ValidationError{Message: err.Error()}
		}
		return item.Payload{}, err
	}
	return item.ParsePayload(body)
}
