package platform

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sweeplabs/modsweep/internal/database/models"
	"github.com/sweeplabs/modsweep/internal/database/types"
	"github.com/sweeplabs/modsweep/internal/database/types/enum"
	"github.com/sweeplabs/modsweep/internal/setup/config"
	"go.uber.org/zap"
)

// youTube implements Adapter against the YouTube Data API v3. Every call is
// quota-metered platform-side, so the orchestrator gates them through the
// quota limiter before dispatch.
type youTube struct {
	conn        *types.Connection
	connections *models.ConnectionModel
	cfg         *config.YouTube
	transport   *transport
	logger      *zap.Logger
	refreshed   bool
}

func newYouTube(deps Deps) *youTube {
	return &youTube{
		conn:        deps.Connection,
		connections: deps.Connections,
		cfg:         &deps.Config.YouTube,
		transport:   newTransport(time.Duration(deps.Config.YouTube.RequestTimeout) * time.Millisecond),
		logger:      deps.Logger.Named("youtube"),
	}
}

// Platform identifies the adapter's platform.
func (y *youTube) Platform() enum.Platform {
	return enum.PlatformYouTube
}

// get performs an authenticated GET against the Data API, refreshing the
// access token once per scan when it is near expiry.
func (y *youTube) get(ctx context.Context, path string, params url.Values, out any) error {
	if y.conn.TokenNearExpiry() && !y.refreshed {
		if err := y.RefreshToken(ctx); err != nil {
			// Non-fatal here; the request below fails with a clear 401 if the
			// old token is truly dead.
			y.logger.Warn("Token refresh failed", zap.Error(err))
		}
	}

	body, err := y.transport.do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(
			ctx, http.MethodGet, y.cfg.APIBaseURL+path+"?"+params.Encode(), nil,
		)
		if err != nil {
			return nil, err
		}

		req.Header.Set("Authorization", "Bearer "+y.conn.AccessToken)

		return req, nil
	})
	if err != nil {
		return err
	}

	return sonic.Unmarshal(body, out)
}

type searchResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title       string    `json:"title"`
			PublishedAt time.Time `json:"publishedAt"`
			Thumbnails  struct {
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// GetContents enumerates the channel's videos, newest first.
func (y *youTube) GetContents(ctx context.Context, limit int, cursor string) ([]*Content, string, error) {
	params := url.Values{
		"part":       {"snippet"},
		"forMine":    {"true"},
		"type":       {"video"},
		"order":      {"date"},
		"maxResults": {strconv.Itoa(limit)},
	}
	if cursor != "" {
		params.Set("pageToken", cursor)
	}

	var resp searchResponse
	if err := y.get(ctx, "/search", params, &resp); err != nil {
		return nil, "", fmt.Errorf("failed to list videos: %w", err)
	}

	contents := make([]*Content, 0, len(resp.Items))
	for _, item := range resp.Items {
		contents = append(contents, &Content{
			ContentID:   item.ID.VideoID,
			ContentType: "video",
			Title:       item.Snippet.Title,
			Thumbnail:   item.Snippet.Thumbnails.Default.URL,
			URL:         "https://www.youtube.com/watch?v=" + item.ID.VideoID,
			PublishedAt: item.Snippet.PublishedAt,
		})
	}

	return contents, resp.NextPageToken, nil
}

type commentThreadsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		Snippet struct {
			TopLevelComment struct {
				ID      string `json:"id"`
				Snippet struct {
					AuthorDisplayName string    `json:"authorDisplayName"`
					AuthorChannelID   struct {
						Value string `json:"value"`
					} `json:"authorChannelId"`
					TextDisplay string    `json:"textDisplay"`
					PublishedAt time.Time `json:"publishedAt"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
}

// GetComments fetches one page of comment threads for a video, newest first.
// A commentsDisabled rejection from the platform is reported through the
// page's Disabled flag, not as an error.
func (y *youTube) GetComments(ctx context.Context, contentID string, limit int, cursor string) (*CommentPage, error) {
	params := url.Values{
		"part":       {"snippet"},
		"videoId":    {contentID},
		"order":      {"time"},
		"maxResults": {strconv.Itoa(limit)},
		"textFormat": {"plainText"},
	}
	if cursor != "" {
		params.Set("pageToken", cursor)
	}

	var resp commentThreadsResponse

	err := y.get(ctx, "/commentThreads", params, &resp)
	if err != nil {
		if isCommentsDisabled(err) {
			return &CommentPage{Disabled: true}, nil
		}

		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	page := &CommentPage{NextCursor: resp.NextPageToken}
	for _, item := range resp.Items {
		comment := item.Snippet.TopLevelComment
		page.Comments = append(page.Comments, &Comment{
			ID:          comment.ID,
			AuthorID:    comment.Snippet.AuthorChannelID.Value,
			AuthorName:  comment.Snippet.AuthorDisplayName,
			Text:        comment.Snippet.TextDisplay,
			PublishedAt: comment.Snippet.PublishedAt,
		})
	}

	return page, nil
}

// setModerationStatus drives both delete and hide; YouTube models removal as
// rejecting the comment and hiding as holding it for review.
func (y *youTube) setModerationStatus(ctx context.Context, commentID, status string) (*ActionAck, error) {
	params := url.Values{
		"id":               {commentID},
		"moderationStatus": {status},
	}

	_, err := y.transport.do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(
			ctx, http.MethodPost,
			y.cfg.APIBaseURL+"/comments/setModerationStatus?"+params.Encode(), nil,
		)
		if err != nil {
			return nil, err
		}

		req.Header.Set("Authorization", "Bearer "+y.conn.AccessToken)

		return req, nil
	})
	if err != nil {
		return &ActionAck{Success: false, Message: platformError(err)}, nil
	}

	return &ActionAck{Success: true}, nil
}

// DeleteComment rejects the comment, removing it from the video.
func (y *youTube) DeleteComment(ctx context.Context, commentID string) (*ActionAck, error) {
	return y.setModerationStatus(ctx, commentID, "rejected")
}

// HideComment holds the comment for review, hiding it from public view.
func (y *youTube) HideComment(ctx context.Context, commentID string) (*ActionAck, error) {
	return y.setModerationStatus(ctx, commentID, "heldForReview")
}

type channelsResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

// TestConnection probes the authenticated channel.
func (y *youTube) TestConnection(ctx context.Context) (*AccountInfo, error) {
	params := url.Values{
		"part": {"snippet"},
		"mine": {"true"},
	}

	var resp channelsResponse
	if err := y.get(ctx, "/channels", params, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionTest, err)
	}

	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: no channel for credentials", ErrConnectionTest)
	}

	return &AccountInfo{
		ID:   resp.Items[0].ID,
		Name: resp.Items[0].Snippet.Title,
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// RefreshToken exchanges the stored refresh token for a new access token and
// persists the new expiry. Runs at most once per scan.
func (y *youTube) RefreshToken(ctx context.Context) error {
	y.refreshed = true

	if y.conn.RefreshToken == "" {
		return errors.New("connection has no refresh token")
	}

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {y.conn.RefreshToken},
		"client_id":     {y.cfg.ClientID},
		"client_secret": {y.cfg.ClientSecret},
	}

	body, err := y.transport.do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(
			ctx, http.MethodPost, y.cfg.TokenURL, strings.NewReader(form.Encode()),
		)
		if err != nil {
			return nil, err
		}

		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		return req, nil
	})
	if err != nil {
		return fmt.Errorf("token refresh failed: %w", err)
	}

	var token tokenResponse
	if err := sonic.Unmarshal(body, &token); err != nil {
		return fmt.Errorf("failed to parse token response: %w", err)
	}

	expiry := time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	y.conn.AccessToken = token.AccessToken
	y.conn.TokenExpiry = expiry

	if err := y.connections.UpdateTokens(ctx, y.conn.ID, token.AccessToken, expiry); err != nil {
		return err
	}

	y.logger.Debug("Refreshed access token", zap.String("connectionID", y.conn.ID))

	return nil
}

// isCommentsDisabled inspects a Data API error payload for the
// commentsDisabled rejection reason.
func isCommentsDisabled(err error) bool {
	var serr *statusError
	if !errors.As(err, &serr) || serr.Status != http.StatusForbidden {
		return false
	}

	var payload struct {
		Error struct {
			Errors []struct {
				Reason string `json:"reason"`
			} `json:"errors"`
		} `json:"error"`
	}

	if uerr := sonic.Unmarshal(serr.Body, &payload); uerr != nil {
		return false
	}

	for _, e := range payload.Error.Errors {
		if e.Reason == "commentsDisabled" {
			return true
		}
	}

	return false
}

// platformError extracts a compact message from a platform error for audit
// logging.
func platformError(err error) string {
	var serr *statusError
	if errors.As(err, &serr) {
		var payload struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}

		if uerr := sonic.Unmarshal(serr.Body, &payload); uerr == nil && payload.Error.Message != "" {
			return fmt.Sprintf("status %d: %s", serr.Status, payload.Error.Message)
		}

		return serr.Error()
	}

	return err.Error()
}
