// internal/service/adcampaign/draft_store.go
package adcampaign

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"homescout-service/internal/domain/adcampaign"
	xerrors "homescout-service/internal/pkg/errors"

	"github.com/redis/go-redis/v9"
)

// DraftStore keeps at most one in-progress campaign draft per realtor in
// Redis. Drafts never touch the campaigns table; an abandoned draft simply
// expires.
type DraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDraftStore(client *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{client: client, ttl: ttl}
}

func (s *DraftStore) key(realtorID int64) string {
	return fmt.Sprintf("campaign:draft:%d", realtorID)
}

func (s *DraftStore) Get(ctx context.Context, realtorID int64) (*adcampaign.Draft, error) {
	data, err := s.client.Get(ctx, s.key(realtorID)).Bytes()
	if err == redis.Nil {
		return nil, xerrors.ErrDraftNotStarted
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}

	var d adcampaign.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &d, nil
}

// Save stores the draft and resets its TTL; every edit keeps the draft alive.
func (s *DraftStore) Save(ctx context.Context, realtorID int64, d *adcampaign.Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := s.client.Set(ctx, s.key(realtorID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store draft: %w", err)
	}
	return nil
}

func (s *DraftStore) Delete(ctx context.Context, realtorID int64) error {
	return s.client.Del(ctx, s.key(realtorID)).Err()
}
