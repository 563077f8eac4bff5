package requeststore

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"attendance-backend/lib/kvstore"
	mirrorstore "attendance-backend/lib/kvstore/mirror"
	"attendance-backend/models"
	requestapimodels "attendance-backend/models/api/request"
	dbmodels "attendance-backend/models/db"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(ctx context.Context, rec dbmodels.Request) (id string, err error)
	GetByID(ctx context.Context, id string) (rec *dbmodels.Request, err error)
	GetActiveBySubject(ctx context.Context, username string) (rec *dbmodels.Request, err error)
	List(ctx context.Context, filter requestapimodels.RequestFilter) (list []dbmodels.Request, err error)
	Resolve(ctx context.Context, id string, outcome models.RequestStatus, actor, reason string, sideEffect func(rec dbmodels.Request) error) (rec *dbmodels.Request, err error)
}

func NewInstance(cache kvstore.Provider, mirror mirrorstore.Provider, key string) Provider {
	return &impl{
		cache:  cache,
		mirror: mirror,
		key:    key,
	}
}

type impl struct {
	cache  kvstore.Provider
	mirror mirrorstore.Provider
	key    string
	mu     sync.Mutex // serializes mutations; resolve re-checks status under it
}

func (i *impl) Create(ctx context.Context, rec dbmodels.Request) (id string, err error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	list, err := i.loadAll(ctx)
	if err != nil {
		return "", err
	}
	for _, current := range list {
		if current.SubjectUsername == rec.SubjectUsername && current.IsPending() {
			return "", models.ErrDuplicateActiveRequest
		}
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.RequestedAt.IsZero() {
		rec.RequestedAt = time.Now().UTC()
	}
	rec.Status = models.RequestStatusPending
	list = append(list, rec)
	if err = i.saveAll(ctx, list); err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i *impl) GetByID(ctx context.Context, id string) (*dbmodels.Request, error) {
	list, err := i.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for idx := range list {
		if list[idx].ID == id {
			rec := list[idx]
			return &rec, nil
		}
	}
	return nil, nil
}

func (i *impl) GetActiveBySubject(ctx context.Context, username string) (*dbmodels.Request, error) {
	list, err := i.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for idx := range list {
		if list[idx].SubjectUsername == username && list[idx].IsPending() {
			rec := list[idx]
			return &rec, nil
		}
	}
	return nil, nil
}

func (i *impl) List(ctx context.Context, filter requestapimodels.RequestFilter) ([]dbmodels.Request, error) {
	list, err := i.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dbmodels.Request, 0, len(list))
	for _, rec := range list {
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		if filter.Kind != "" && rec.Kind != filter.Kind {
			continue
		}
		result = append(result, rec)
	}
	// newest first
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].RequestedAt.After(result[b].RequestedAt)
	})
	return result, nil
}

// Resolve re-reads the record under the mutation lock, runs the caller's side
// effect while the record is still pending and only then commits the terminal
// status. A failed side effect leaves the stored record untouched.
func (i *impl) Resolve(ctx context.Context, id string, outcome models.RequestStatus, actor, reason string, sideEffect func(rec dbmodels.Request) error) (*dbmodels.Request, error) {
	if !outcome.IsTerminal() {
		return nil, errors.Errorf("not a terminal outcome: %v", outcome)
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	list, err := i.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for pos := range list {
		if list[pos].ID == id {
			idx = pos
			break
		}
	}
	if idx < 0 {
		return nil, models.ErrRequestNotFound
	}
	if !list[idx].IsPending() {
		return nil, models.AlreadyResolvedError{Status: list[idx].Status}
	}
	if sideEffect != nil {
		if err = sideEffect(list[idx]); err != nil {
			return nil, err
		}
	}
	now := time.Now().UTC()
	list[idx].Status = outcome
	list[idx].ResolvedAt = &now
	list[idx].ResolvedBy = actor
	if outcome == models.RequestStatusRejected {
		list[idx].RejectionReason = reason
	}
	// credential material never survives a terminal transition
	list[idx].Payload.Password = ""
	if err = i.saveAll(ctx, list); err != nil {
		return nil, err
	}
	rec := list[idx]
	return &rec, nil
}

// loadAll reads the record list from the cache and falls back to the file
// mirror when the cache is empty, adopting the mirror contents back into it.
func (i *impl) loadAll(ctx context.Context) ([]dbmodels.Request, error) {
	data, err := i.cache.Get(ctx, i.key)
	if err != nil {
		return nil, err
	}
	list := []dbmodels.Request{}
	if len(data) > 0 {
		if err = json.Unmarshal(data, &list); err != nil {
			return nil, errors.Wrap(err, "request cache record is malformed")
		}
	}
	if len(list) > 0 {
		return list, nil
	}
	mirrorData, err := i.mirror.Read()
	if err != nil {
		log.WithError(err).Warn("request mirror is unreadable, continuing with empty cache")
		return list, nil
	}
	if len(mirrorData) == 0 {
		return list, nil
	}
	if err = json.Unmarshal(mirrorData, &list); err != nil {
		log.WithError(err).Warn("request mirror record is malformed, continuing with empty cache")
		return []dbmodels.Request{}, nil
	}
	if len(list) > 0 {
		if err = i.cache.Put(ctx, i.key, mirrorData); err != nil {
			log.WithError(err).Error("failed to adopt mirror records into cache")
		}
	}
	return list, nil
}

// saveAll writes the record list to both layers. The cache is authoritative:
// its failure fails the operation, a mirror failure is logged and swallowed.
func (i *impl) saveAll(ctx context.Context, list []dbmodels.Request) error {
	data, err := json.Marshal(list)
	if err != nil {
		return errors.Wrap(err, "request list serialization failed")
	}
	if err = i.cache.Put(ctx, i.key, data); err != nil {
		return err
	}
	if err = i.mirror.Write(data); err != nil {
		log.WithError(err).
			WithField("key", i.key).
			Error("mirror write failed after cache update, cache remains authoritative")
	}
	return nil
}
