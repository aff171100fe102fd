package platform

import (
	"context"

	"github.com/sweeplabs/modsweep/internal/database/types"
	"github.com/sweeplabs/modsweep/internal/database/types/enum"
	"go.uber.org/zap"
)

// queuedForAgentMessage marks actions that were accepted for out-of-band
// execution, not executed. The agent's result report carries the real
// outcome.
const queuedForAgentMessage = "queued for agent execution"

// agent implements Adapter for platforms without server-side comment access.
// The browser agent scrapes and acts on the client; this adapter only
// acknowledges requests so the rest of the system sees a uniform surface.
type agent struct {
	conn   *types.Connection
	logger *zap.Logger
}

func newAgent(deps Deps) *agent {
	return &agent{
		conn:   deps.Connection,
		logger: deps.Logger.Named("agent_adapter"),
	}
}

// Platform identifies the adapter's platform.
func (a *agent) Platform() enum.Platform {
	return a.conn.Platform
}

// GetContents returns nothing; enumeration happens client-side and comments
// arrive through the agent ingestion endpoint.
func (a *agent) GetContents(ctx context.Context, _ int, _ string) ([]*Content, string, error) {
	a.logger.Debug("Server-side enumeration skipped for agent-assisted connection",
		zap.String("connectionID", a.conn.ID))

	return nil, "", nil
}

// GetComments returns an empty page for the same reason as GetContents.
func (a *agent) GetComments(ctx context.Context, _ string, _ int, _ string) (*CommentPage, error) {
	return &CommentPage{}, nil
}

// DeleteComment acknowledges the request for agent execution.
func (a *agent) DeleteComment(ctx context.Context, commentID string) (*ActionAck, error) {
	return &ActionAck{Success: true, Queued: true, Message: queuedForAgentMessage}, nil
}

// HideComment acknowledges the request for agent execution.
func (a *agent) HideComment(ctx context.Context, commentID string) (*ActionAck, error) {
	return &ActionAck{Success: true, Queued: true, Message: queuedForAgentMessage}, nil
}

// TestConnection always succeeds; there are no server-side credentials to
// verify for an agent-assisted connection.
func (a *agent) TestConnection(ctx context.Context) (*AccountInfo, error) {
	return &AccountInfo{
		ID:   a.conn.ExternalAccountID,
		Name: a.conn.AccountName,
	}, nil
}

// RefreshToken is a no-op; agent connections hold no tokens.
func (a *agent) RefreshToken(ctx context.Context) error {
	return nil
}
