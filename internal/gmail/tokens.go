// internal/gmail/tokens.go
package gmail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
)

const (
	oauthStatePrefix  = "gmail:oauth_state:"
	credentialsPrefix = "gmail:creds:"
	oauthStateTTL     = 15 * time.Minute
)

// TokenStore keeps OAuth state nonces (with TTL) and per-user Gmail
// credentials in redis.
type TokenStore struct {
	rdb *redis.Client
}

func NewTokenStore(rdb *redis.Client) *TokenStore {
	return &TokenStore{rdb: rdb}
}

func (s *TokenStore) SaveState(ctx context.Context, state string, userID int64) error {
	if err := s.rdb.Set(ctx, oauthStatePrefix+state, userID, oauthStateTTL).Err(); err != nil {
		return fmt.Errorf("save oauth state: %w", err)
	}
	return nil
}

// UserForState returns 0 when the state is unknown or expired.
func (s *TokenStore) UserForState(ctx context.Context, state string) (int64, error) {
	value, err := s.rdb.Get(ctx, oauthStatePrefix+state).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("get oauth state: %w", err)
	}
	return strconv.ParseInt(value, 10, 64)
}

func (s *TokenStore) DeleteState(ctx context.Context, state string) error {
	return s.rdb.Del(ctx, oauthStatePrefix+state).Err()
}

func (s *TokenStore) SaveToken(ctx context.Context, userID int64, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}
	if err := s.rdb.Set(ctx, credentialsKey(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Token returns nil when the user has no stored credentials.
func (s *TokenStore) Token(ctx context.Context, userID int64) (*oauth2.Token, error) {
	data, err := s.rdb.Get(ctx, credentialsKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get token: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("unmarshal token: %w", err)
	}
	return &token, nil
}

func (s *TokenStore) DeleteToken(ctx context.Context, userID int64) error {
	return s.rdb.Del(ctx, credentialsKey(userID)).Err()
}

func credentialsKey(userID int64) string {
	return credentialsPrefix + strconv.FormatInt(userID, 10)
}
