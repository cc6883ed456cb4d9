/*
 * © 2024 Snyk Limited
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package taskqueue

import (
	"time"

	"github.com/erni27/imcache"

	"github.com/snyk/snyk-ide-core/internal/product"
)

const DefaultResultExpiry = 12 * time.Hour

// CachedResult is the last successful CLI result of a product for one project.
type CachedResult struct {
	Result       any
	IssueCount   int
	RescanNeeded bool
	Timestamp    time.Time
}

// ResultCache keeps the results of the products scanned by the client itself. An expired result counts as
// missing, so it triggers a rescan.
type ResultCache struct {
	cache *imcache.Cache[product.Product, CachedResult]
}

func NewResultCache(expiry time.Duration) *ResultCache {
	return &ResultCache{
		cache: imcache.New[product.Product, CachedResult](
			imcache.WithDefaultExpirationOption[product.Product, CachedResult](expiry),
		),
	}
}

func (r *ResultCache) Get(p product.Product) (CachedResult, bool) {
	return r.cache.Get(p)
}

func (r *ResultCache) Set(p product.Product, result any, issueCount int) {
	r.cache.Set(p, CachedResult{Result: result, IssueCount: issueCount, Timestamp: time.Now()}, imcache.WithDefaultExpiration())
}

func (r *ResultCache) Remove(p product.Product) {
	r.cache.Remove(p)
}

// RescanNeeded reports whether p has to be scanned again.
func (r *ResultCache) RescanNeeded(p product.Product) bool {
	cached, ok := r.cache.Get(p)
	return !ok || cached.RescanNeeded
}

// MarkRescanNeeded flags the cached results of the given products, or of all products if none are given.
func (r *ResultCache) MarkRescanNeeded(products ...product.Product) {
	if len(products) == 0 {
		products = product.All
	}
	for _, p := range products {
		if cached, ok := r.cache.Get(p); ok {
			cached.RescanNeeded = true
			r.cache.Set(p, cached, imcache.WithDefaultExpiration())
		}
	}
}

func (r *ResultCache) Clear() {
	r.cache.RemoveAll()
}

func (r *ResultCache) Close() {
	r.cache.Close()
}
