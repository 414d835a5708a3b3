package views

import (
	"hash/fnv"
	"math/rand/v2"

	"github.com/terryzhangxr/typace/internal/model"
)

// Recommend picks up to n posts other than current, uniformly at random and
// without repeats, using reservoir sampling. The generator is seeded from
// seed and the current slug, so a given build always recommends the same
// posts for a page.
func Recommend(posts []*model.Post, current string, n int, seed uint64) []*model.Post {
	if n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(seed, slugHash(current)))

	var reservoir []*model.Post
	seen := 0
	for _, p := range posts {
		if p.Slug == current {
			continue
		}
		seen++
		if len(reservoir) < n {
			reservoir = append(reservoir, p)
			continue
		}
		if j := rng.IntN(seen); j < n {
			reservoir[j] = p
		}
	}
	return reservoir
}

func slugHash(slug string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(slug))
	return h.Sum64()
}
