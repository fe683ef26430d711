package cache_test

import (
	"testing"
	"time"

	"github.com/saralbooks/billing-api/internal/domain"
	"github.com/saralbooks/billing-api/internal/infra/cache"
)

func TestSetAndGet(t *testing.T) {
	c := cache.New[*domain.BusinessProfile](time.Minute)
	defer c.Close()

	profile := &domain.BusinessProfile{ID: "biz-1", Name: "Saral Traders", State: "MH"}
	c.Set("profile:biz-1", profile)

	got, ok := c.Get("profile:biz-1")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.State != "MH" {
		t.Errorf("expected state MH, got %s", got.State)
	}
}

func TestGetMissing(t *testing.T) {
	c := cache.New[string](time.Minute)
	defer c.Close()

	if _, ok := c.Get("nope"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestExpiry(t *testing.T) {
	c := cache.New[int](10 * time.Millisecond)
	defer c.Close()

	c.Set("k", 42)
	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("expected entry to expire")
	}
}

func TestDelete(t *testing.T) {
	c := cache.New[int](time.Minute)
	defer c.Close()

	c.Set("k", 1)
	c.Delete("k")

	if _, ok := c.Get("k"); ok {
		t.Error("expected deleted key to miss")
	}
}
