package contact

import (
	"context"
	"testing"

	"github.com/tukang-design/studio-api/internal/catalog"
)

func validRequest() *CreateMessageRequest {
	return &CreateMessageRequest{
		Name:    "Aina Rahman",
		Email:   "aina@example.com",
		Company: "Kopi Corner",
		Message: "We need a site before our launch in October.",
		Region:  catalog.RegionMY,
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := NewInMemoryRepository()

	m, err := repo.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if m.ID == "" || m.CreatedAt.IsZero() {
		t.Error("expected id and timestamp to be set")
	}

	got, err := repo.GetByID(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != "aina@example.com" {
		t.Errorf("unexpected email %q", got.Email)
	}

	if _, err := repo.GetByID(context.Background(), "missing"); err != ErrMessageNotFound {
		t.Errorf("expected ErrMessageNotFound, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateMessageRequest)
		wantErr error
	}{
		{"missing name", func(r *CreateMessageRequest) { r.Name = " " }, ErrMissingName},
		{"missing email", func(r *CreateMessageRequest) { r.Email = "" }, ErrMissingEmail},
		{"missing message", func(r *CreateMessageRequest) { r.Message = "" }, ErrMissingMessage},
		{"bad region", func(r *CreateMessageRequest) { r.Region = "EU" }, ErrInvalidRegion},
	}
	repo := NewInMemoryRepository()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			if _, err := repo.Create(context.Background(), req); err != tt.wantErr {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateDefaultsRegion(t *testing.T) {
	repo := NewInMemoryRepository()
	req := validRequest()
	req.Region = ""

	m, err := repo.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if m.Region != catalog.RegionINT {
		t.Errorf("expected INT default, got %s", m.Region)
	}
}

func TestListFilterAndPagination(t *testing.T) {
	repo := NewInMemoryRepository()
	for i := 0; i < 3; i++ {
		req := validRequest()
		if i == 2 {
			req.Region = catalog.RegionSG
		}
		if _, err := repo.Create(context.Background(), req); err != nil {
			t.Fatal(err)
		}
	}

	all, err := repo.List(context.Background(), ListFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(all))
	}

	sg, err := repo.List(context.Background(), ListFilter{Region: "SG"})
	if err != nil {
		t.Fatal(err)
	}
	if len(sg) != 1 {
		t.Errorf("expected 1 SG message, got %d", len(sg))
	}

	page, err := repo.List(context.Background(), ListFilter{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 1 {
		t.Errorf("expected 1 message on last page, got %d", len(page))
	}

	empty, err := repo.List(context.Background(), ListFilter{Offset: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty page, got %d", len(empty))
	}
}
