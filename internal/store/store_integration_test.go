package store_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/careerflow-ai/careerflow/internal/store"
)

func TestStoreHistoryLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		tcPostgres.WithDatabase("careerflow"),
		tcPostgres.WithUsername("careerflow"),
		tcPostgres.WithPassword("careerflow"),
		testcontainers.WithWaitStrategy(wait.ForListeningPort("5432/tcp")),
	)
	if err != nil {
		t.Fatalf("postgres container: %v", err)
	}
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	if err != nil {
		t.Fatalf("postgres host: %v", err)
	}
	port, err := pgC.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("postgres port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://careerflow:careerflow@%s:%s/careerflow?sslmode=disable", host, port.Port())

	if err := store.Migrate("file://../../migrations", dsn, "up", 0); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	st, err := store.NewWithDSN(ctx, dsn)
	if err != nil {
		t.Fatalf("store init: %v", err)
	}
	defer st.Close()

	if err := st.CreateUser(ctx, "integration@example.com", "hash", "Integration Tester"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	userID, hash, err := st.GetUserByEmail(ctx, "integration@example.com")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if hash != "hash" || userID == "" {
		t.Fatalf("unexpected user row: id=%q hash=%q", userID, hash)
	}
	if _, _, err := st.GetUserByEmail(ctx, "missing@example.com"); err != store.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	payload, _ := json.Marshal(map[string]interface{}{"ats_score": 82})
	for i := 0; i < 3; i++ {
		if _, err := st.SaveHistory(ctx, store.HistoryRecord{
			UserID:     userID,
			SessionID:  fmt.Sprintf("s-%d", i),
			AgentName:  "Resume Analyzer",
			ActionType: "analyze",
			Summary:    fmt.Sprintf("ATS Score: %d", 80+i),
			FullOutput: payload,
		}); err != nil {
			t.Fatalf("save history %d: %v", i, err)
		}
	}

	total, page, err := st.ListHistory(ctx, userID, 1, 2)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if total != 3 || len(page) != 2 {
		t.Fatalf("expected total=3 page=2, got total=%d page=%d", total, len(page))
	}

	hydrated, err := st.GetHistory(ctx, []string{page[0].ID, page[1].ID})
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if len(hydrated) != 2 {
		t.Fatalf("expected 2 hydrated records, got %d", len(hydrated))
	}

	// Nothing is old enough to prune yet.
	n, err := st.PruneHistory(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 pruned, got %d", n)
	}

	// A future cutoff clears everything.
	n, err = st.PruneHistory(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 pruned, got %d", n)
	}
}
