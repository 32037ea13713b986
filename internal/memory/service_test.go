package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/easeaico/gptamagotchi/internal/types"
)

type fakeMemoryRepo struct {
	added    []types.Memory
	searched [][]float32
	results  []types.RetrievedMemory
}

func (r *fakeMemoryRepo) AddMemory(ctx context.Context, mem types.Memory) error {
	r.added = append(r.added, mem)
	return nil
}

func (r *fakeMemoryRepo) SearchSimilar(ctx context.Context, userID string, embedding []float32, topK int, threshold float64) ([]types.RetrievedMemory, error) {
	r.searched = append(r.searched, embedding)
	return r.results, nil
}

type fakeEmbedder struct {
	vec []float32
}

func (e *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.vec, nil
}

func (e *fakeEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return e.vec, nil
}

func (e *fakeEmbedder) Dimensions() int {
	return len(e.vec)
}

func TestRememberConversationBelowThreshold(t *testing.T) {
	repo := &fakeMemoryRepo{}
	svc := NewService(&fakeEmbedder{vec: []float32{0.1}}, repo, 5, 0.5)

	// 50 + 50 = 100 bytes, not strictly greater than the threshold.
	user := strings.Repeat("a", 50)
	reply := strings.Repeat("b", 50)
	created, err := svc.RememberConversation(context.Background(), "user-1", user, reply)
	if err != nil {
		t.Fatalf("remember: %v", err)
	}
	if created {
		t.Fatal("100-byte exchange must not create a memory")
	}
	if len(repo.added) != 0 {
		t.Fatalf("expected no insert, got %d", len(repo.added))
	}
}

func TestRememberConversationAboveThreshold(t *testing.T) {
	repo := &fakeMemoryRepo{}
	svc := NewService(&fakeEmbedder{vec: []float32{0.1, 0.2}}, repo, 5, 0.5)

	user := strings.Repeat("a", 60)
	reply := strings.Repeat("b", 41)
	created, err := svc.RememberConversation(context.Background(), "user-1", user, reply)
	if err != nil {
		t.Fatalf("remember: %v", err)
	}
	if !created {
		t.Fatal("101-byte exchange must create a memory")
	}
	if len(repo.added) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.added))
	}

	stored := repo.added[0]
	if stored.UserID != "user-1" {
		t.Fatalf("unexpected user: %q", stored.UserID)
	}
	if stored.Source != types.MemorySourceConversation || stored.MemoryType != types.MemoryTypeEpisodic {
		t.Fatalf("unexpected classification: %s/%s", stored.Source, stored.MemoryType)
	}
	if !strings.Contains(stored.Text, strings.Repeat("a", 50)) {
		t.Fatalf("excerpt missing truncated user message: %q", stored.Text)
	}
	if strings.Contains(stored.Text, strings.Repeat("a", 51)) {
		t.Fatalf("excerpt must truncate at 50 characters: %q", stored.Text)
	}
	if stored.EmotionalImpact < 0 || stored.EmotionalImpact >= 0.8 {
		t.Fatalf("impact estimate out of placeholder range: %v", stored.EmotionalImpact)
	}
	if len(stored.Embedding) != 2 {
		t.Fatalf("expected embedding to be attached, got %v", stored.Embedding)
	}
}

func TestRememberGame(t *testing.T) {
	repo := &fakeMemoryRepo{}
	svc := NewService(&fakeEmbedder{vec: []float32{0.3}}, repo, 5, 0.5)

	if err := svc.RememberGame(context.Background(), "user-1", "Bubble Pop", 17); err != nil {
		t.Fatalf("remember game: %v", err)
	}
	if len(repo.added) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.added))
	}
	stored := repo.added[0]
	if stored.Text != "User played Bubble Pop and scored 17 points. They seemed to enjoy the activity." {
		t.Fatalf("unexpected memory text: %q", stored.Text)
	}
	if stored.EmotionalImpact != gameMemoryImpact {
		t.Fatalf("expected fixed impact %v, got %v", gameMemoryImpact, stored.EmotionalImpact)
	}
	if stored.MemoryType != types.MemoryTypeFact {
		t.Fatalf("expected fact memory, got %q", stored.MemoryType)
	}
}

func TestRetrieve(t *testing.T) {
	repo := &fakeMemoryRepo{
		results: []types.RetrievedMemory{{Text: "past chat", Similarity: 0.8}},
	}
	svc := NewService(&fakeEmbedder{vec: []float32{0.5, 0.5}}, repo, 5, 0.5)

	memories, err := svc.Retrieve(context.Background(), "user-1", "what did we talk about")
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(memories) != 1 || memories[0].Text != "past chat" {
		t.Fatalf("unexpected results: %+v", memories)
	}
	if len(repo.searched) != 1 || len(repo.searched[0]) != 2 {
		t.Fatalf("expected one search with the query embedding, got %+v", repo.searched)
	}
}

func TestRetrieveEmptyQuery(t *testing.T) {
	repo := &fakeMemoryRepo{}
	svc := NewService(&fakeEmbedder{}, repo, 5, 0.5)

	memories, err := svc.Retrieve(context.Background(), "user-1", "")
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if memories != nil {
		t.Fatalf("expected nil for empty query, got %+v", memories)
	}
	if len(repo.searched) != 0 {
		t.Fatal("empty query must not hit the store")
	}
}

func TestNilRepoDegradesToNoOp(t *testing.T) {
	svc := NewService(&fakeEmbedder{vec: []float32{0.1}}, nil, 5, 0.5)

	created, err := svc.RememberConversation(context.Background(), "user-1", strings.Repeat("a", 80), strings.Repeat("b", 80))
	if err != nil {
		t.Fatalf("remember with nil repo: %v", err)
	}
	if !created {
		t.Fatal("memorable exchange still reports creation intent")
	}

	memories, err := svc.Retrieve(context.Background(), "user-1", "anything")
	if err != nil {
		t.Fatalf("retrieve with nil repo: %v", err)
	}
	if memories != nil {
		t.Fatalf("expected nil memories, got %+v", memories)
	}
}
