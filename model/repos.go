package model

import (
	"github.com/TestingSDK2/produco-backend/cache"
	"github.com/TestingSDK2/produco-backend/mongodatabase"
)

// Repos container to hold handles for cache / db repos
type Repos struct {
	Cache   *cache.Cache
	MongoDB *mongodatabase.Database
}
