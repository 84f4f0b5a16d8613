package service

import (
	"context"
	"errors"
	"testing"

	"promptkit/internal/domain"
	"promptkit/internal/domain/services"
)

func TestUpsertProfile(t *testing.T) {
	website := "https://example.com"
	badURL := "not a url"

	tests := []struct {
		name    string
		req     services.UpsertProfileRequest
		wantErr error
	}{
		{name: "valid", req: services.UpsertProfileRequest{UserID: userA, Username: "ada.l", Website: &website}},
		{name: "too short", req: services.UpsertProfileRequest{UserID: userA, Username: "ab"}, wantErr: domain.ErrValidation},
		{name: "spaces", req: services.UpsertProfileRequest{UserID: userA, Username: "ada lovelace"}, wantErr: domain.ErrValidation},
		{name: "bad website", req: services.UpsertProfileRequest{UserID: userA, Username: "ada", Website: &badURL}, wantErr: domain.ErrValidation},
		{name: "no user", req: services.UpsertProfileRequest{Username: "ada"}, wantErr: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewProfileService(&fakeProfileRepo{}, NewTextSanitizer(), discardLogger())
			p, err := svc.UpsertProfile(context.Background(), &tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpsertProfile: %v", err)
			}
			if p.ID != tt.req.UserID {
				t.Errorf("profile id = %s, want %s", p.ID, tt.req.UserID)
			}
		})
	}
}

func TestUpsertProfile_UsernameTaken(t *testing.T) {
	repo := &fakeProfileRepo{}
	svc := NewProfileService(repo, NewTextSanitizer(), discardLogger())
	ctx := context.Background()

	if _, err := svc.UpsertProfile(ctx, &services.UpsertProfileRequest{UserID: userA, Username: "ada"}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	_, err := svc.UpsertProfile(ctx, &services.UpsertProfileRequest{UserID: userB, Username: "ada"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}

	got, err := svc.GetProfile(ctx, userA)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.Username != "ada" {
		t.Errorf("username = %q", got.Username)
	}
	if _, err := svc.GetProfile(ctx, userB); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetProfile(userB) err = %v, want ErrNotFound", err)
	}
}
