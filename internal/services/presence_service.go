package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"classroom-service/internal/database"

	"github.com/redis/go-redis/v9"
)

// PresenceService mirrors live connection state into Redis so other
// instances (and ops tooling) can see who is online and in which session
// rooms. It backs the relay's presence hook.
type PresenceService struct {
	client *database.RedisClient
}

func NewPresenceService(client *database.RedisClient) *PresenceService {
	return &PresenceService{
		client: client,
	}
}

// =============================================================================
// User Status Management
// =============================================================================

func (p *PresenceService) SetUserOnline(ctx context.Context, userID string) error {
	pipe := p.client.GetClient().Pipeline()

	pipe.SAdd(ctx, "online_users", userID)
	pipe.HSet(ctx, fmt.Sprintf("user:%s:status", userID), map[string]interface{}{
		"status":     "online",
		"last_seen":  time.Now().Unix(),
		"updated_at": time.Now().Unix(),
	})
	pipe.Expire(ctx, fmt.Sprintf("user:%s:status", userID), 5*time.Minute)

	_, err := pipe.Exec(ctx)
	if err != nil {
		slog.Error("Failed to set user online", "userID", userID, "error", err)
		return err
	}

	slog.Debug("User set to online", "userID", userID)
	return nil
}

func (p *PresenceService) SetUserOffline(ctx context.Context, userID string) error {
	pipe := p.client.GetClient().Pipeline()

	pipe.SRem(ctx, "online_users", userID)
	pipe.HSet(ctx, fmt.Sprintf("user:%s:status", userID), map[string]interface{}{
		"status":     "offline",
		"last_seen":  time.Now().Unix(),
		"updated_at": time.Now().Unix(),
	})
	// Offline status sticks around longer for "last seen" lookups
	pipe.Expire(ctx, fmt.Sprintf("user:%s:status", userID), 24*time.Hour)

	_, err := pipe.Exec(ctx)
	if err != nil {
		slog.Error("Failed to set user offline", "userID", userID, "error", err)
		return err
	}

	slog.Debug("User set to offline", "userID", userID)
	return nil
}

func (p *PresenceService) IsUserOnline(ctx context.Context, userID string) (bool, error) {
	return p.client.GetClient().SIsMember(ctx, "online_users", userID).Result()
}

func (p *PresenceService) GetOnlineUsers(ctx context.Context) ([]string, error) {
	return p.client.GetClient().SMembers(ctx, "online_users").Result()
}

// =============================================================================
// Session Room Membership
// =============================================================================

func (p *PresenceService) JoinRoom(ctx context.Context, userID, roomID, role string) error {
	pipe := p.client.GetClient().Pipeline()

	pipe.HSet(ctx, fmt.Sprintf("session:%s:members", roomID), userID, role)
	pipe.SAdd(ctx, fmt.Sprintf("user:%s:sessions", userID), roomID)

	_, err := pipe.Exec(ctx)
	if err != nil {
		slog.Error("Failed to join session room", "userID", userID, "roomID", roomID, "error", err)
		return err
	}

	slog.Debug("User joined session room", "userID", userID, "roomID", roomID, "role", role)
	return nil
}

func (p *PresenceService) LeaveRoom(ctx context.Context, userID, roomID string) error {
	pipe := p.client.GetClient().Pipeline()

	pipe.HDel(ctx, fmt.Sprintf("session:%s:members", roomID), userID)
	pipe.SRem(ctx, fmt.Sprintf("user:%s:sessions", userID), roomID)

	_, err := pipe.Exec(ctx)
	if err != nil {
		slog.Error("Failed to leave session room", "userID", userID, "roomID", roomID, "error", err)
		return err
	}

	slog.Debug("User left session room", "userID", userID, "roomID", roomID)
	return nil
}

// GetRoomMembers returns user id mapped to role for one session room.
func (p *PresenceService) GetRoomMembers(ctx context.Context, roomID string) (map[string]string, error) {
	return p.client.GetClient().HGetAll(ctx, fmt.Sprintf("session:%s:members", roomID)).Result()
}

func (p *PresenceService) IsUserInRoom(ctx context.Context, userID, roomID string) (bool, error) {
	return p.client.GetClient().HExists(ctx, fmt.Sprintf("session:%s:members", roomID), userID).Result()
}

// =============================================================================
// Rate Limiting
// =============================================================================

// CheckRateLimit keeps a sliding window of request timestamps per key and
// reports whether the caller is still under the limit.
func (p *PresenceService) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	windowStart := now.Add(-window).Unix()

	pipe := p.client.GetClient().Pipeline()

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))
	pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.Unix()), Member: now.UnixNano()})
	pipe.Expire(ctx, key, window)

	results, err := pipe.Exec(ctx)
	if err != nil {
		return false, err
	}

	count := results[1].(*redis.IntCmd).Val()

	return count < int64(limit), nil
}
