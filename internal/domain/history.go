package domain

import (
	"context"
	"strings"
	"time"
)

// HistoryItem is one recorded tool invocation shown in the user's history list.
type HistoryItem struct {
	ID        string `json:"id"`
	ToolName  string `json:"tool_name"`
	FileName  string `json:"file_name"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}

// HistorySink records that a tool was run on a file.
type HistorySink interface {
	Record(ctx context.Context, toolName, fileName string) error
}

// HistoryRepository stores history items per owner, newest first.
type HistoryRepository interface {
	Prepend(ownerID string, item HistoryItem, limit int) error
	List(ownerID string) ([]HistoryItem, error)
	Remove(ownerID string, itemID string) error
	Clear(ownerID string) error
}

// HistoryService exposes history operations to handlers.
type HistoryService interface {
	HistorySink
	List(ctx context.Context) ([]HistoryItem, error)
	Remove(ctx context.Context, itemID string) error
	Clear(ctx context.Context) error
}

// UsageLog is a persisted row of the usage_logs table.
type UsageLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ToolName  string    `json:"tool_name"`
	FileName  *string   `json:"file_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UsageStat is the number of invocations for one tool.
type UsageStat struct {
	ToolName string `json:"tool_name"`
	Count    int    `json:"count"`
}

// Profile is a registered user as listed on the admin dashboard.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Activity is a usage log joined with the user's email.
type Activity struct {
	UsageLog
	Email string `json:"email"`
}

// AdminDashboard is the payload of the admin dashboard endpoint.
type AdminDashboard struct {
	Users          []Profile   `json:"users"`
	TotalUsage     int         `json:"total_usage"`
	UsageStats     []UsageStat `json:"usage_stats"`
	RecentActivity []Activity  `json:"recent_activity"`
}

// UsageRepository persists and queries usage logs.
type UsageRepository interface {
	Insert(ctx context.Context, userID, toolName, fileName string) error
	ListToolNames(ctx context.Context) ([]string, error)
	Recent(ctx context.Context, limit int) ([]UsageLog, error)
	ListProfiles(ctx context.Context) ([]Profile, error)
}

// AdminService builds the admin dashboard.
type AdminService interface {
	Dashboard(ctx context.Context) (*AdminDashboard, error)
}

// Actor identifies who is calling the tools.
type Actor struct {
	ID            string
	Email         string
	Authenticated bool
}

// AnonymousActorID is used when neither a token nor a client id is provided.
const AnonymousActorID = "anonymous"

// AnonymousActorPrefix namespaces client ids. Authenticated actors use the
// bare user id, so the two never share a key.
const AnonymousActorPrefix = "anon:"

// AnonymousActor returns the unauthenticated actor for a browser client id.
func AnonymousActor(clientID string) Actor {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return Actor{ID: AnonymousActorID}
	}
	return Actor{ID: AnonymousActorPrefix + clientID}
}

type actorContextKey struct{}

// WithActor returns a copy of ctx carrying the actor.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext returns the actor stored in ctx, or an anonymous actor.
func ActorFromContext(ctx context.Context) Actor {
	if actor, ok := ctx.Value(actorContextKey{}).(Actor); ok && actor.ID != "" {
		return actor
	}
	return Actor{ID: AnonymousActorID}
}
