package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"promptkit/internal/cache"
	"promptkit/internal/domain"
	"promptkit/internal/domain/models"
)

type fakeVerifier struct {
	tokens map[string]string
}

func (v *fakeVerifier) VerifyToken(token string) (*models.SupabaseClaims, error) {
	sub, ok := v.tokens[token]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return &models.SupabaseClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: sub},
		Role:             "authenticated",
	}, nil
}

func (v *fakeVerifier) Close() error { return nil }

func newExtensionFixture(folderRepo *fakeFolderRepo, categoryRepo *fakeCategoryRepo, promptRepo *fakePromptRepo) (*extensionService, *cache.MemoryCache) {
	c := cache.NewMemoryCache()
	svc := NewExtensionService(
		&fakeVerifier{tokens: map[string]string{"good": userA}},
		folderRepo,
		categoryRepo,
		promptRepo,
		c,
		time.Minute,
		discardLogger(),
	).(*extensionService)
	return svc, c
}

func TestValidateToken(t *testing.T) {
	svc, _ := newExtensionFixture(newFakeFolderRepo(), &fakeCategoryRepo{}, newFakePromptRepo(nil))
	ctx := context.Background()

	tests := []struct {
		name      string
		token     string
		wantValid bool
		wantUser  string
	}{
		{name: "valid", token: "good", wantValid: true, wantUser: userA},
		{name: "unknown", token: "forged"},
		{name: "empty", token: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.ValidateToken(ctx, tt.token)
			if got.Valid != tt.wantValid || got.UserID != tt.wantUser {
				t.Errorf("ValidateToken(%q) = %+v", tt.token, got)
			}
			if !got.Valid && got.Error == "" {
				t.Error("invalid result should carry an error message")
			}
		})
	}
}

func TestBuildFilterOptions(t *testing.T) {
	folders := []models.Folder{
		{ID: testID(11), Name: "Work"},
		{ID: testID(10), Name: "Personal"},
	}
	created := []models.Category{
		{ID: testID(901), Name: "Writing"},
		{ID: testID(902), Name: "Coding"},
	}
	liked := []models.Category{
		{ID: testID(902), Name: "Coding"},
		{ID: testID(903), Name: "Analysis"},
	}

	opts := BuildFilterOptions(folders, created, liked)

	wantFolders := []string{"Personal", "Work"}
	wantCategories := []string{"Analysis", "Coding", "Writing"}
	if got := tagNames(opts.Folders); !equalNames(got, wantFolders) {
		t.Errorf("folders = %v, want %v", got, wantFolders)
	}
	if got := tagNames(opts.Categories); !equalNames(got, wantCategories) {
		t.Errorf("categories = %v, want %v", got, wantCategories)
	}
}

func TestBuildFilterOptions_Empty(t *testing.T) {
	opts := BuildFilterOptions(nil)
	if opts.Folders == nil || opts.Categories == nil {
		t.Errorf("empty options should serialize as [] not null: %+v", opts)
	}
}

func TestFilterOptions_Cached(t *testing.T) {
	folderRepo := newFakeFolderRepo(models.Folder{ID: testID(10), UserID: userA, Name: "Work"})
	categoryRepo := &fakeCategoryRepo{created: []models.Category{{ID: testID(901), Name: "Writing"}}}
	svc, _ := newExtensionFixture(folderRepo, categoryRepo, newFakePromptRepo(nil))
	ctx := context.Background()

	first, err := svc.FilterOptions(ctx, userA)
	if err != nil {
		t.Fatalf("FilterOptions: %v", err)
	}
	if len(first.Folders) != 1 || len(first.Categories) != 1 {
		t.Fatalf("unexpected options: %+v", first)
	}

	// later repository changes are not visible until the entry is invalidated
	categoryRepo.created = append(categoryRepo.created, models.Category{ID: testID(902), Name: "Coding"})
	second, err := svc.FilterOptions(ctx, userA)
	if err != nil {
		t.Fatalf("FilterOptions: %v", err)
	}
	if len(second.Categories) != 1 {
		t.Errorf("expected cached options, got %+v", second.Categories)
	}
}

func TestExtensionPromptLists(t *testing.T) {
	promptRepo := newFakePromptRepo(nil)
	for i := 0; i < 60; i++ {
		promptRepo.created = append(promptRepo.created, models.ExtensionPrompt{ID: testID(1000 + i)})
	}
	promptRepo.liked = []models.ExtensionPrompt{{ID: testID(2000)}}
	svc, _ := newExtensionFixture(newFakeFolderRepo(), &fakeCategoryRepo{}, promptRepo)
	ctx := context.Background()

	created, err := svc.CreatedPrompts(ctx, userA)
	if err != nil {
		t.Fatalf("CreatedPrompts: %v", err)
	}
	if created.Count != 50 || len(created.Prompts) != 50 {
		t.Errorf("created count = %d, want the 50 newest", created.Count)
	}

	liked, err := svc.LikedPrompts(ctx, userA)
	if err != nil {
		t.Fatalf("LikedPrompts: %v", err)
	}
	if liked.Count != 1 {
		t.Errorf("liked count = %d, want 1", liked.Count)
	}
}

func tagNames(tags []models.FilterTag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.Name
	}
	return out
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
