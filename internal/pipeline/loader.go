package pipeline

import (
	"fmt"
	"sync"
	"time"

	"pmlens/internal/model"
	"pmlens/internal/source"
)

// LoadResult holds the output of the full data loading pipeline.
type LoadResult struct {
	Snapshot  model.Snapshot
	RowErrors int // rows with unparsable fields (still loaded, fields degraded)
}

// Load discovers and parses both CSV files from the data directory.
// The two files parse concurrently and join before the result is built;
// a failure of either file is terminal for the run.
func Load(dataDir string) (*LoadResult, error) {
	files, err := source.ScanDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dataDir, err)
	}

	results := make([]source.ParseResult, len(files))
	var wg sync.WaitGroup

	wg.Add(len(files))
	for i, f := range files {
		go func(i int, f source.DiscoveredFile) {
			defer wg.Done()
			results[i] = source.ParseFile(f)
		}(i, f)
	}
	wg.Wait()

	result := &LoadResult{
		Snapshot: model.Snapshot{LoadedAt: time.Now()},
	}

	for i, pr := range results {
		if pr.Err != nil {
			return nil, fmt.Errorf("parsing %s: %w", files[i].Path, pr.Err)
		}
		result.RowErrors += pr.RowErrors
		switch pr.Kind {
		case source.KindProjects:
			result.Snapshot.Projects = pr.Projects
		case source.KindChangeOrders:
			result.Snapshot.ChangeOrders = pr.ChangeOrders
		}
	}

	return result, nil
}
