// Package otp issues and checks the short-lived numeric codes used by the
// password reset flow. Codes live in an expiring in-process store behind a
// small interface so a shared backend can be swapped in without touching the
// auth service.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	DefaultTTL      = 10 * time.Minute
	cleanupInterval = 5 * time.Minute
)

type Store interface {
	Set(email, code string)
	Get(email string) (string, bool)
	Delete(email string)
}

type CacheStore struct {
	c *cache.Cache
}

func NewCacheStore(ttl time.Duration) *CacheStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CacheStore{c: cache.New(ttl, cleanupInterval)}
}

func (s *CacheStore) Set(email, code string) {
	s.c.SetDefault(email, code)
}

func (s *CacheStore) Get(email string) (string, bool) {
	v, found := s.c.Get(email)
	if !found {
		return "", false
	}
	code, ok := v.(string)
	return code, ok
}

func (s *CacheStore) Delete(email string) {
	s.c.Delete(email)
}

// GenerateCode returns a random six digit code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
