package store

import (
	"fmt"
	"sync"

	"github.com/blevesearch/bleve"
)

// HistoryIndex provides BM25 search over history summaries. Each user gets
// their own mem-only index, created lazily on first write, so a query can
// never leak another user's records. The indexes are rebuilt from Postgres
// on startup and kept in sync by the audit recorder; losing them costs
// nothing but a reindex.
type HistoryIndex struct {
	mu     sync.RWMutex
	byUser map[string]bleve.Index
}

type historyDoc struct {
	AgentName string `json:"agent_name"`
	Summary   string `json:"summary"`
}

func NewHistoryIndex() *HistoryIndex {
	return &HistoryIndex{byUser: make(map[string]bleve.Index)}
}

func (h *HistoryIndex) userIndex(userID string) (bleve.Index, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if idx, ok := h.byUser[userID]; ok {
		return idx, nil
	}
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create history index: %w", err)
	}
	h.byUser[userID] = idx
	return idx, nil
}

// Add indexes one history record under its id.
func (h *HistoryIndex) Add(rec HistoryRecord) error {
	idx, err := h.userIndex(rec.UserID)
	if err != nil {
		return err
	}
	return idx.Index(rec.ID, historyDoc{
		AgentName: rec.AgentName,
		Summary:   rec.Summary,
	})
}

// Search runs a query-string search over one user's records and returns the
// ids of the best matches, most relevant first. A user with no indexed
// records gets an empty result, not an error.
func (h *HistoryIndex) Search(userID, q string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 20
	}
	h.mu.RLock()
	idx, ok := h.byUser[userID]
	h.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	query := bleve.NewQueryStringQuery(q)
	req := bleve.NewSearchRequestOptions(query, limit, 0, false)
	res, err := idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search history: %w", err)
	}

	ids := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

func (h *HistoryIndex) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	var first error
	for id, idx := range h.byUser {
		if err := idx.Close(); err != nil && first == nil {
			first = err
		}
		delete(h.byUser, id)
	}
	return first
}
