package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/entity"
)

// IdentityService - fetches user profiles from the social platform's
// identity API. Plain request/response, no logic of its own.
type IdentityService interface {
	GetProfileByFID(ctx context.Context, fid string) (*entity.User, error)
}

type identityService struct {
	baseURL string
	client  *http.Client
}

func NewIdentityService(baseURL string) IdentityService {
	return &identityService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (that *identityService) GetProfileByFID(ctx context.Context, fid string) (*entity.User, error) {
	endpoint := fmt.Sprintf("%s/v1/user?fid=%s", that.baseURL, url.QueryEscape(fid))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build profile request: %w", err)
	}

	resp, err := that.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get profile: status %d", resp.StatusCode)
	}

	var user entity.User
	if err = json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	return &user, nil
}
