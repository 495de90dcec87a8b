package ratelimit

import (
	"testing"
	"time"
)

func TestLimiter_AllowWithinWindow(t *testing.T) {
	l := New(2, time.Minute)
	store := Store{}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if !l.Allow(store, "reload", now) {
		t.Fatal("expected first request allowed")
	}
	if !l.Allow(store, "reload", now.Add(time.Second)) {
		t.Fatal("expected second request allowed")
	}
	if l.Allow(store, "reload", now.Add(2*time.Second)) {
		t.Fatal("expected third request rejected")
	}
	if wait := l.RetryAfter(store, "reload", now.Add(2*time.Second)); wait != 58*time.Second {
		t.Fatalf("unexpected retry after: %s", wait)
	}
	if !l.Allow(store, "other", now) {
		t.Fatal("identifiers must not share history")
	}
	if !l.Allow(store, "reload", now.Add(61*time.Second)) {
		t.Fatal("expected request allowed after window")
	}
}

func TestLimiter_SeparateStoresAreIndependent(t *testing.T) {
	l := New(1, time.Hour)
	now := time.Now()
	a, b := Store{}, Store{}
	if !l.Allow(a, "x", now) || !l.Allow(b, "x", now) {
		t.Fatal("expected each store to allow its first request")
	}
	if l.Allow(a, "x", now) {
		t.Fatal("expected store a to be exhausted")
	}
}

func TestLimiter_NilStoreRejects(t *testing.T) {
	if New(1, time.Second).Allow(nil, "x", time.Now()) {
		t.Fatal("expected nil store to reject")
	}
}
