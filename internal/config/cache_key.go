package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// LiveSessionKey returns the cache key registering an issued live-session
// token ID. The key's presence makes the token valid; its TTL ends the
// session.
func (r *CacheKeyStruct) LiveSessionKey(jti string) string {
	return fmt.Sprintf("live:session:%s", jti)
}

var CacheKey = NewCacheKeyStruct()
