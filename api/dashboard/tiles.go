package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/kochabx/dashkit/log"
)

const releaseTimeout = 5 * time.Second

// LoadTiles fetches every resource with at most workers calls in flight.
// Tiles come back in the order of resources, each with its own error; a
// failing tile does not stop the others.
func (s *Service) LoadTiles(ctx context.Context, req StatsRequest, resources []string, workers int) ([]Tile, error) {
	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := pool.ReleaseTimeout(releaseTimeout); err != nil {
			log.Warn().Err(err).Msg("tile pool release timed out")
		}
	}()

	tiles := make([]Tile, len(resources))
	var wg sync.WaitGroup
	for i, resource := range resources {
		tiles[i].Resource = resource
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			tiles[i].Data, tiles[i].Err = s.Stats(ctx, resource, req)
		})
		if err != nil {
			wg.Done()
			tiles[i].Err = err
		}
	}
	wg.Wait()

	return tiles, nil
}
