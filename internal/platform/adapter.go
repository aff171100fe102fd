package platform

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sweeplabs/modsweep/internal/database/models"
	"github.com/sweeplabs/modsweep/internal/database/types"
	"github.com/sweeplabs/modsweep/internal/database/types/enum"
	"github.com/sweeplabs/modsweep/internal/setup/config"
	"go.uber.org/zap"
)

var (
	// ErrUnknownPlatform is returned when no adapter is registered for a
	// connection's platform.
	ErrUnknownPlatform = errors.New("no adapter registered for platform")
	// ErrConnectionTest is returned when the pre-scan health probe fails.
	ErrConnectionTest = errors.New("connection test failed")
)

// Content is a normalized content item (video, post) returned by adapters.
type Content struct {
	ContentID   string    `json:"contentId"`
	ContentType string    `json:"contentType"`
	Title       string    `json:"title"`
	Thumbnail   string    `json:"thumbnail"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Comment is a normalized comment returned by adapters, newest first.
type Comment struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"authorId"`
	AuthorName  string    `json:"authorName"`
	Text        string    `json:"text"`
	PublishedAt time.Time `json:"publishedAt"`
}

// CommentPage is one page of comments for a content item. Disabled marks the
// platform reporting comments turned off for the item, which is a skip
// signal for the scan and not a failure.
type CommentPage struct {
	Comments   []*Comment
	NextCursor string
	Disabled   bool
}

// ActionAck is the immediate result of a delete or hide call. For
// agent-assisted connections Queued marks fire-and-forget acceptance; the
// real outcome arrives later through the agent's result report.
type ActionAck struct {
	Success bool
	Queued  bool
	Message string
}

// AccountInfo identifies the external account behind a connection.
type AccountInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Adapter normalizes enumeration, comment fetch and moderation actions
// across platforms. Implementations hold one connection's credentials for
// the duration of a scan and refresh them lazily.
type Adapter interface {
	// Platform identifies the adapter's platform.
	Platform() enum.Platform
	// GetContents enumerates the account's content, newest first.
	GetContents(ctx context.Context, limit int, cursor string) ([]*Content, string, error)
	// GetComments fetches one page of comments for a content item, newest first.
	GetComments(ctx context.Context, contentID string, limit int, cursor string) (*CommentPage, error)
	// DeleteComment removes a comment, or queues the removal for the agent.
	DeleteComment(ctx context.Context, commentID string) (*ActionAck, error)
	// HideComment hides a comment from public view, or queues it for the agent.
	HideComment(ctx context.Context, commentID string) (*ActionAck, error)
	// TestConnection is the cheap health probe run once at scan start.
	TestConnection(ctx context.Context) (*AccountInfo, error)
	// RefreshToken exchanges the refresh credential when the access token is
	// near expiry. A no-op for connections without tokens.
	RefreshToken(ctx context.Context) error
}

// Deps carries everything adapter constructors may need.
type Deps struct {
	Connection  *types.Connection
	Connections *models.ConnectionModel
	Config      *config.Platforms
	Logger      *zap.Logger
}

// Factory constructs an adapter bound to one connection.
type Factory func(deps Deps) Adapter

var (
	registryMu sync.RWMutex
	registry   = make(map[enum.Platform]Factory)
)

// Register installs a factory for a platform. New platforms register
// themselves without the orchestrator changing.
func Register(platform enum.Platform, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	registry[platform] = factory
}

// New builds the adapter for a connection's platform.
func New(deps Deps) (Adapter, error) {
	registryMu.RLock()
	factory, ok := registry[deps.Connection.Platform]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlatform, deps.Connection.Platform)
	}

	return factory(deps), nil
}

func init() {
	Register(enum.PlatformYouTube, func(deps Deps) Adapter { return newYouTube(deps) })
	Register(enum.PlatformTikTok, func(deps Deps) Adapter { return newAgent(deps) })
	Register(enum.PlatformInstagram, func(deps Deps) Adapter { return newAgent(deps) })
}
