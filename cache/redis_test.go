package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

func TestRedisCache_SetAndGet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, time.Hour, "")
	ctx := context.Background()

	mock.ExpectSet("lingocache:abc:en:hi", "नमस्ते", time.Hour).SetVal("OK")
	if err := c.Set(ctx, "abc:en:hi", "नमस्ते"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectGet("lingocache:abc:en:hi").SetVal("नमस्ते")
	val, ok := c.Get(ctx, "abc:en:hi")
	if !ok {
		t.Fatal("expected a hit")
	}
	if val != "नमस्ते" {
		t.Errorf("expected नमस्ते, got %q", val)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisCache_MissOnNil(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, time.Hour, "")

	mock.ExpectGet("lingocache:missing").RedisNil()
	if _, ok := c.Get(context.Background(), "missing"); ok {
		t.Error("expected a miss for an absent key")
	}
}

func TestRedisCache_ErrorDegradesToMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, time.Hour, "")

	mock.ExpectGet("lingocache:key").SetErr(errors.New("connection refused"))
	if _, ok := c.Get(context.Background(), "key"); ok {
		t.Error("a store error must read as a miss, not a hit")
	}
}

func TestRedisCache_DefaultTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, 0, "")

	mock.ExpectSet("lingocache:key", "value", DefaultTTL).SetVal("OK")
	if err := c.Set(context.Background(), "key", "value"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisCache_NegativeTTLMeansNoExpiry(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, -1, "")

	mock.ExpectSet("lingocache:key", "value", time.Duration(0)).SetVal("OK")
	if err := c.Set(context.Background(), "key", "value"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRedisCache_CustomPrefix(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, time.Hour, "shop:")

	mock.ExpectGet("shop:key").SetVal("value")
	if val, ok := c.Get(context.Background(), "key"); !ok || val != "value" {
		t.Errorf("expected hit with custom prefix, got %q ok=%v", val, ok)
	}
}

func TestRedisCache_SetError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, time.Hour, "")

	mock.ExpectSet("lingocache:key", "value", time.Hour).SetErr(errors.New("write refused"))
	if err := c.Set(context.Background(), "key", "value"); err == nil {
		t.Error("expected the store error to surface from Set")
	}
}
