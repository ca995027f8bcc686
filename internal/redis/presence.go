package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	presenceOnlineSet   = "presence:online"
	presenceConnsPrefix = "presence:conns:"
	defaultPresenceTTL  = 2 * time.Minute
)

// releaseConnection decrements the socket count and drops the user from the
// online set when it reaches zero.
var releaseConnection = goredis.NewScript(`
	local n = redis.call('DECR', KEYS[1])
	if n <= 0 then
		redis.call('DEL', KEYS[1])
		redis.call('SREM', KEYS[2], ARGV[1])
		return 0
	end
	return n
`)

// PresenceStore tracks which users hold at least one websocket. Each socket
// counts once so a second tab closing does not mark the user offline.
type PresenceStore struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewPresenceStore(client *goredis.Client, ttl time.Duration) *PresenceStore {
	if ttl <= 0 {
		ttl = defaultPresenceTTL
	}
	return &PresenceStore{client: client, ttl: ttl}
}

func (p *PresenceStore) SetOnline(ctx context.Context, userID string) error {
	pipe := p.client.TxPipeline()
	pipe.Incr(ctx, presenceConnsPrefix+userID)
	pipe.Expire(ctx, presenceConnsPrefix+userID, p.ttl)
	pipe.SAdd(ctx, presenceOnlineSet, userID)
	_, err := pipe.Exec(ctx)
	return err
}

func (p *PresenceStore) SetOffline(ctx context.Context, userID string) error {
	return releaseConnection.Run(ctx, p.client, []string{presenceConnsPrefix + userID, presenceOnlineSet}, userID).Err()
}

// Heartbeat keeps the connection counter alive while sockets stay open.
func (p *PresenceStore) Heartbeat(ctx context.Context, userID string) error {
	return p.client.Expire(ctx, presenceConnsPrefix+userID, p.ttl).Err()
}

// IsOnline requires both the set membership and a live counter, so users
// whose instance died without cleanup expire after the TTL.
func (p *PresenceStore) IsOnline(ctx context.Context, userID string) (bool, error) {
	pipe := p.client.Pipeline()
	member := pipe.SIsMember(ctx, presenceOnlineSet, userID)
	conns := pipe.Exists(ctx, presenceConnsPrefix+userID)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return member.Val() && conns.Val() == 1, nil
}

func (p *PresenceStore) ConnectionCount(ctx context.Context, userID string) (int64, error) {
	n, err := p.client.Get(ctx, presenceConnsPrefix+userID).Int64()
	if err == goredis.Nil {
		return 0, nil
	}
	return n, err
}

func (p *PresenceStore) OnlineUsers(ctx context.Context) ([]string, error) {
	return p.client.SMembers(ctx, presenceOnlineSet).Result()
}
