package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ChangeNotifier is the debounced entry point for the hosted store's
// external change feed.
type ChangeNotifier interface {
	NotifyChanged()
}

type SyncHandler struct {
	notifier ChangeNotifier
}

func NewSyncHandler(notifier ChangeNotifier) *SyncHandler {
	return &SyncHandler{notifier: notifier}
}

// NotifyChange accepts change-feed webhooks from the hosted store and
// schedules a debounced reload.
func (h *SyncHandler) NotifyChange(c *gin.Context) {
	h.notifier.NotifyChanged()
	c.Status(http.StatusAccepted)
}
