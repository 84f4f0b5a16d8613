package extension

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"promptkit/internal/domain/models"
	"promptkit/internal/filter"
)

// Popup is the state behind the two prompt tabs: the session, the prompts
// each tab shows, the known filter tags and the chip selection per tab.
type Popup struct {
	client *Client
	store  Store
	bus    *Bus
	logger *slog.Logger

	mu      sync.RWMutex
	session Session
	prompts map[filter.Tab][]models.ExtensionPrompt
	errs    map[filter.Tab]error
	options models.FilterOptions
	known   filter.KnownTags
	state   filter.State
}

// NewPopup creates an empty, signed-out popup. bus may be nil.
func NewPopup(client *Client, store Store, bus *Bus, logger *slog.Logger) *Popup {
	p := &Popup{
		client: client,
		store:  store,
		bus:    bus,
		logger: logger,
	}
	p.reset()
	return p
}

// reset must be called with mu held or before p is shared.
func (p *Popup) reset() {
	p.session = Session{}
	p.prompts = map[filter.Tab][]models.ExtensionPrompt{
		filter.TabCreated: {},
		filter.TabLiked:   {},
	}
	p.errs = make(map[filter.Tab]error)
	p.options = models.FilterOptions{Folders: []models.FilterTag{}, Categories: []models.FilterTag{}}
	p.known = filter.NewKnownTags(p.options)
	p.state = filter.NewState()
}

// Init loads the stored session and checks it with the server. It reports
// whether the popup is signed in. A rejected token clears the stored
// session; a transport failure keeps it and is returned.
func (p *Popup) Init(ctx context.Context) (bool, error) {
	session, err := p.store.Load()
	if err != nil {
		return false, err
	}
	if !session.Authenticated() {
		return false, nil
	}

	validation, err := p.client.WithToken(session.AuthToken).ValidateToken(ctx)
	if err != nil {
		return false, fmt.Errorf("validate token: %w", err)
	}
	if !validation.Valid {
		p.logger.Info("stored token expired, clearing session", "user_id", session.UserID)
		if err := p.store.Clear(); err != nil {
			return false, err
		}
		return false, nil
	}

	p.mu.Lock()
	p.reset()
	p.session = session
	p.mu.Unlock()
	return true, nil
}

// Session returns the current session.
func (p *Popup) Session() Session {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.session
}

func (p *Popup) authedClient() *Client {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.client.WithToken(p.session.AuthToken)
}

// Refresh reloads both tabs and the filter options. A failed fetch leaves
// its tab empty and is recorded in TabError; the other tab still loads.
// Filter option failures leave the chip list empty.
func (p *Popup) Refresh(ctx context.Context) {
	client := p.authedClient()

	type tabResult struct {
		prompts []models.ExtensionPrompt
		err     error
	}
	var (
		wg      sync.WaitGroup
		results = make(map[filter.Tab]*tabResult, 2)
		opts    *models.FilterOptions
		optsErr error
	)
	fetchers := map[filter.Tab]func(context.Context) (*models.ExtensionPromptList, error){
		filter.TabCreated: client.CreatedPrompts,
		filter.TabLiked:   client.LikedPrompts,
	}
	for tab := range fetchers {
		results[tab] = &tabResult{}
	}
	for tab, fetch := range fetchers {
		res := results[tab]
		wg.Go(func() {
			list, err := fetch(ctx)
			if err != nil {
				res.err = err
				return
			}
			res.prompts = list.Prompts
		})
	}
	wg.Go(func() {
		opts, optsErr = client.FilterOptions(ctx)
	})
	wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()

	for tab, res := range results {
		if res.err != nil {
			p.logger.Warn("failed to load prompts", "tab", tab, "error", res.err)
			p.prompts[tab] = []models.ExtensionPrompt{}
			p.errs[tab] = res.err
			continue
		}
		if res.prompts == nil {
			res.prompts = []models.ExtensionPrompt{}
		}
		p.prompts[tab] = res.prompts
		delete(p.errs, tab)
	}

	if optsErr != nil {
		p.logger.Warn("failed to load filter options", "error", optsErr)
		p.options = models.FilterOptions{Folders: []models.FilterTag{}, Categories: []models.FilterTag{}}
		p.known = filter.NewKnownTags(p.options)
		return
	}
	p.options = *opts
	p.known = filter.NewKnownTags(p.options)
	p.state = filter.Prune(p.state, p.known)
}

// TabError returns the error of the last fetch of tab, if any.
func (p *Popup) TabError(tab filter.Tab) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.errs[tab]
}

// FilterOptions returns the chips offered by the last Refresh.
func (p *Popup) FilterOptions() models.FilterOptions {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.options
}

// Click applies a chip click on tab.
func (p *Popup) Click(tab filter.Tab, tag string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = filter.Reduce(p.state, filter.Action{Tab: tab, Tag: tag})
}

// Selection returns the active chips of tab.
func (p *Popup) Selection(tab filter.Tab) filter.Selection {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state.Selection(tab)
}

// Visible returns the prompts of tab that pass its current selection.
func (p *Popup) Visible(tab filter.Tab) []models.ExtensionPrompt {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return filter.Prompts(p.prompts[tab], p.state.Selection(tab), p.known)
}

// Copy returns the full content of a prompt and records the copy. A failed
// counter update is logged and does not fail the copy.
func (p *Popup) Copy(ctx context.Context, id string) (string, error) {
	client := p.authedClient()

	prompt, err := client.GetPrompt(ctx, id)
	if err != nil {
		return "", fmt.Errorf("fetch prompt: %w", err)
	}
	if _, err := client.RecordCopy(ctx, id); err != nil {
		p.logger.Warn("failed to record copy", "prompt_id", id, "error", err)
	}
	return prompt.Content, nil
}

// SignOut clears the stored session and the in-memory state.
func (p *Popup) SignOut(ctx context.Context) error {
	if err := p.store.Clear(); err != nil {
		return err
	}

	p.mu.Lock()
	p.reset()
	p.mu.Unlock()

	if p.bus == nil {
		return nil
	}
	return p.bus.Publish(ctx, Message{
		Type:    MsgSignedOut,
		Payload: AuthUpdatedPayload{IsAuthenticated: false},
	})
}
