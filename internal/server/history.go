package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/careerflow-ai/careerflow/internal/store"
)

// HistoryHandler serves the authenticated history listing and its search.
type HistoryHandler struct {
	Store *store.Store
	Index *store.HistoryIndex
}

func (h *HistoryHandler) Register(g *echo.Group, secret []byte) {
	g.Use(func(next echo.HandlerFunc) echo.HandlerFunc { return withAuth(next, secret) })
	g.GET("", h.list)
	g.GET("/search", h.search)
}

func (h *HistoryHandler) list(c echo.Context) error {
	userID := c.Get("user_id").(string)
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	total, records, err := h.Store.ListHistory(c.Request().Context(), userID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, HistoryListResponse{
		Total:   total,
		Page:    page,
		Limit:   limit,
		Records: historyEntries(records),
	})
}

func (h *HistoryHandler) search(c echo.Context) error {
	userID := c.Get("user_id").(string)
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	ids, err := h.Index.Search(userID, q, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	records, err := h.Store.GetHistory(c.Request().Context(), ids)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, HistoryListResponse{
		Total:   len(records),
		Page:    1,
		Limit:   limit,
		Records: historyEntries(records),
	})
}

func historyEntries(records []store.HistoryRecord) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(records))
	for _, r := range records {
		var payload interface{}
		if len(r.FullOutput) > 0 {
			if err := json.Unmarshal(r.FullOutput, &payload); err != nil {
				payload = string(r.FullOutput)
			}
		}
		out = append(out, HistoryEntry{
			ID:         r.ID,
			SessionID:  r.SessionID,
			AgentName:  r.AgentName,
			ActionType: r.ActionType,
			Summary:    r.Summary,
			FullOutput: payload,
			CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}
