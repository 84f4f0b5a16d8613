package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"promptkit/internal/cache"
	"promptkit/internal/domain"
	"promptkit/internal/domain/models"
	"promptkit/internal/domain/repositories"
	serviceauth "promptkit/internal/service/auth"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// uuid-shaped ids so ozzo is.UUID accepts them
func testID(n int) string {
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
}

type passthroughTx struct{}

func (passthroughTx) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

type fakeFolderRepo struct {
	mu      sync.Mutex
	folders map[string]models.Folder
	nextID  int
}

func newFakeFolderRepo(folders ...models.Folder) *fakeFolderRepo {
	r := &fakeFolderRepo{folders: make(map[string]models.Folder), nextID: 100}
	for _, f := range folders {
		r.folders[f.ID] = f
	}
	return r
}

func (r *fakeFolderRepo) Create(_ context.Context, f *models.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.folders {
		if existing.UserID == f.UserID && existing.Name == f.Name && samePtr(existing.ParentID, f.ParentID) {
			return &domain.ConflictError{Message: "exists", ResourceType: "folder", ResourceID: existing.ID}
		}
	}
	r.nextID++
	f.ID = testID(r.nextID)
	r.folders[f.ID] = *f
	return nil
}

func (r *fakeFolderRepo) GetByID(_ context.Context, fid, userID string) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[fid]
	if !ok || f.UserID != userID {
		return nil, domain.NotFound("folder", fid)
	}
	return &f, nil
}

func (r *fakeFolderRepo) Update(_ context.Context, f *models.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.folders[f.ID]; !ok {
		return domain.NotFound("folder", f.ID)
	}
	r.folders[f.ID] = *f
	return nil
}

func (r *fakeFolderRepo) Delete(_ context.Context, fid, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[fid]
	if !ok || f.UserID != userID {
		return domain.NotFound("folder", fid)
	}
	// mirror UNIQUE (user_id, parent_id, name) as children move to the root
	rootNames := make(map[string]bool)
	for _, other := range r.folders {
		if other.UserID == userID && other.ParentID == nil && other.ID != fid {
			rootNames[other.Name] = true
		}
	}
	for _, child := range r.folders {
		if child.ParentID != nil && *child.ParentID == fid && rootNames[child.Name] {
			return &domain.ConflictError{Message: "duplicate root name", ResourceType: "folder"}
		}
	}

	delete(r.folders, fid)
	for k, child := range r.folders {
		if child.ParentID != nil && *child.ParentID == fid {
			child.ParentID = nil
			r.folders[k] = child
		}
	}
	return nil
}

func (r *fakeFolderRepo) ListChildren(_ context.Context, parentID *string, userID string) ([]models.Folder, error) {
	all, _ := r.ListByUser(context.Background(), userID)
	out := []models.Folder{}
	for _, f := range all {
		if samePtr(f.ParentID, parentID) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFolderRepo) ListByUser(_ context.Context, userID string) ([]models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Folder{}
	for _, f := range r.folders {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func samePtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

type fakePromptRepo struct {
	mu      sync.Mutex
	prompts map[string]models.Prompt
	nextID  int
	likes   *fakeLikeRepo

	lastQuery *models.PromptQuery
	created   []models.ExtensionPrompt
	liked     []models.ExtensionPrompt
}

func newFakePromptRepo(likes *fakeLikeRepo, prompts ...models.Prompt) *fakePromptRepo {
	r := &fakePromptRepo{prompts: make(map[string]models.Prompt), nextID: 500, likes: likes}
	for _, p := range prompts {
		r.prompts[p.ID] = p
	}
	return r
}

func (r *fakePromptRepo) Create(_ context.Context, p *models.Prompt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = testID(r.nextID)
	r.prompts[p.ID] = *p
	return nil
}

func (r *fakePromptRepo) GetByID(ctx context.Context, pid string) (*models.Prompt, error) {
	r.mu.Lock()
	p, ok := r.prompts[pid]
	r.mu.Unlock()
	if !ok {
		return nil, domain.NotFound("prompt", pid)
	}
	if r.likes != nil {
		p.LikeCount, _ = r.likes.Count(ctx, pid)
	}
	return &p, nil
}

func (r *fakePromptRepo) Update(_ context.Context, p *models.Prompt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.prompts[p.ID]
	if !ok || existing.UserID != p.UserID {
		return domain.NotFound("prompt", p.ID)
	}
	r.prompts[p.ID] = *p
	return nil
}

func (r *fakePromptRepo) Delete(_ context.Context, pid, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.prompts[pid]
	if !ok || p.UserID != userID {
		return domain.NotFound("prompt", pid)
	}
	delete(r.prompts, pid)
	return nil
}

func (r *fakePromptRepo) List(_ context.Context, q *models.PromptQuery) ([]models.Prompt, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastQuery = q
	out := []models.Prompt{}
	for _, p := range r.prompts {
		if p.IsPublic || p.UserID == q.ViewerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := len(out)
	start := q.Offset()
	if start > total {
		start = total
	}
	end := start + q.PageSize
	if end > total {
		end = total
	}
	return out[start:end], total, nil
}

func (r *fakePromptRepo) ListByFolder(_ context.Context, folderID, userID string) ([]models.Prompt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Prompt{}
	for _, p := range r.prompts {
		if p.UserID == userID && p.FolderID != nil && *p.FolderID == folderID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePromptRepo) ListCreatedForExtension(_ context.Context, _ string, limit int) ([]models.ExtensionPrompt, error) {
	if len(r.created) > limit {
		return r.created[:limit], nil
	}
	return r.created, nil
}

func (r *fakePromptRepo) ListLikedForExtension(_ context.Context, _ string, limit int) ([]models.ExtensionPrompt, error) {
	if len(r.liked) > limit {
		return r.liked[:limit], nil
	}
	return r.liked, nil
}

func (r *fakePromptRepo) SetCategories(_ context.Context, pid string, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.prompts[pid]
	p.CategoryIDs = ids
	r.prompts[pid] = p
	return nil
}

func (r *fakePromptRepo) IncrementCopyCount(_ context.Context, pid string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.prompts[pid]
	if !ok {
		return 0, domain.NotFound("prompt", pid)
	}
	p.CopyCount++
	r.prompts[pid] = p
	return p.CopyCount, nil
}

func (r *fakePromptRepo) IncrementViewCount(_ context.Context, pid string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.prompts[pid]
	if !ok {
		return 0, domain.NotFound("prompt", pid)
	}
	p.ViewCount++
	r.prompts[pid] = p
	return p.ViewCount, nil
}

type fakeLikeRepo struct {
	mu    sync.Mutex
	likes map[[2]string]bool
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[[2]string]bool)}
}

func (r *fakeLikeRepo) Exists(_ context.Context, promptID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.likes[[2]string{promptID, userID}], nil
}

func (r *fakeLikeRepo) Add(_ context.Context, promptID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.likes[[2]string{promptID, userID}] = true
	return nil
}

func (r *fakeLikeRepo) Remove(_ context.Context, promptID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.likes, [2]string{promptID, userID})
	return nil
}

func (r *fakeLikeRepo) Count(_ context.Context, promptID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for k := range r.likes {
		if k[0] == promptID {
			n++
		}
	}
	return n, nil
}

func (r *fakeLikeRepo) ListUserIDs(_ context.Context, promptID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for k := range r.likes {
		if k[0] == promptID {
			ids = append(ids, k[1])
		}
	}
	return ids, nil
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories []models.Category
	created    []models.Category
	liked      []models.Category
	listCalls  int
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	return append([]models.Category(nil), r.categories...), nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, cid string) (*models.Category, error) {
	for _, c := range r.categories {
		if c.ID == cid {
			return &c, nil
		}
	}
	return nil, domain.NotFound("category", cid)
}

func (r *fakeCategoryRepo) Upsert(_ context.Context, c *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.categories {
		if existing.Name == c.Name {
			r.categories[i].Description = c.Description
			c.ID = existing.ID
			return nil
		}
	}
	c.ID = testID(900 + len(r.categories))
	r.categories = append(r.categories, *c)
	return nil
}

func (r *fakeCategoryRepo) ListForCreatedPrompts(_ context.Context, _ string) ([]models.Category, error) {
	return r.created, nil
}

func (r *fakeCategoryRepo) ListForLikedPrompts(_ context.Context, _ string) ([]models.Category, error) {
	return r.liked, nil
}

type fakeProfileRepo struct {
	profiles map[string]models.Profile
}

func (r *fakeProfileRepo) GetByID(_ context.Context, userID string) (*models.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.NotFound("profile", userID)
	}
	return &p, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, p *models.Profile) error {
	if r.profiles == nil {
		r.profiles = make(map[string]models.Profile)
	}
	for _, existing := range r.profiles {
		if existing.Username == p.Username && existing.ID != p.ID {
			return &domain.ConflictError{Message: "taken", ResourceType: "profile"}
		}
	}
	r.profiles[p.ID] = *p
	return nil
}

// promptFixture wires the prompt service over fakes
type promptFixture struct {
	svc     *promptService
	prompts *fakePromptRepo
	likes   *fakeLikeRepo
	folders *fakeFolderRepo
	cache   *cache.MemoryCache
}

func newPromptFixture(prompts []models.Prompt, folders ...models.Folder) *promptFixture {
	likes := newFakeLikeRepo()
	promptRepo := newFakePromptRepo(likes, prompts...)
	folderRepo := newFakeFolderRepo(folders...)
	c := cache.NewMemoryCache()

	svc := NewPromptService(
		promptRepo,
		likes,
		passthroughTx{},
		serviceauth.NewOwnerBasedAuthorizer(promptRepo, folderRepo),
		c,
		NewTextSanitizer(),
		discardLogger(),
	).(*promptService)

	return &promptFixture{svc: svc, prompts: promptRepo, likes: likes, folders: folderRepo, cache: c}
}
