/*
Copyright © 2020 the ChemScheme authors.
This file is part of ChemScheme.

ChemScheme is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ChemScheme is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ChemScheme.  If not, see <http://www.gnu.org/licenses/>.
*/

package rate

import (
	"context"

	"github.com/ctessum/requestcache"
	"github.com/spatialmodel/chemscheme/internal/hash"
)

// Cache memoizes the rate coefficients an Evaluator returns for each set of
// inputs. Concurrent requests for the same inputs are evaluated once.
type Cache struct {
	cache *requestcache.Cache
}

type cacheResult struct {
	k   []float64
	err error
}

// NewCache returns a cache that holds up to maxEntries results and
// evaluates e with the given number of workers.
func NewCache(e *Evaluator, workers, maxEntries int) *Cache {
	process := func(ctx context.Context, request interface{}) (interface{}, error) {
		// Evaluation errors travel inside the result: the deduplication
		// stage only releases waiting duplicates after a successful request.
		k, err := e.Evaluate(request.(Inputs))
		return cacheResult{k: k, err: err}, nil
	}
	return &Cache{
		cache: requestcache.NewCache(process, workers,
			requestcache.Deduplicate(), requestcache.Memory(maxEntries)),
	}
}

// Evaluate returns the rate coefficients for in, evaluating them only if
// they are not already cached. The returned slice belongs to the caller.
func (c *Cache) Evaluate(ctx context.Context, in Inputs) ([]float64, error) {
	v, err := c.cache.NewRequest(ctx, in, hash.Hash(in)).Result()
	if err != nil {
		return nil, err
	}
	r := v.(cacheResult)
	if r.err != nil {
		return nil, r.err
	}
	return append([]float64(nil), r.k...), nil
}

// Requests returns the number of requests the cache has received and the
// number of them that had to be evaluated.
func (c *Cache) Requests() (total, evaluated int) {
	r := c.cache.Requests()
	return r[0], r[len(r)-1]
}
