package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestKey(t *testing.T) {
	if got := Key("p-1", "u-9"); got != "vote:p-1:u-9" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestNewVoteGuard_DefaultTTL(t *testing.T) {
	g := NewVoteGuard(nil, 0)
	if g.ttl != defaultGuardTTL {
		t.Fatalf("expected default ttl, got %s", g.ttl)
	}
	g = NewVoteGuard(nil, time.Minute)
	if g.ttl != time.Minute {
		t.Fatalf("expected 1m ttl, got %s", g.ttl)
	}
}

func TestVoteGuard_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	g := NewVoteGuard(client, time.Minute)
	claimed, err := g.Claim(context.Background(), "p", "u")
	if err == nil {
		t.Fatalf("expected error from unreachable redis")
	}
	if claimed {
		t.Fatalf("failed claim must not report success")
	}
}
