package source

import (
	"fmt"
	"os"
	"path/filepath"
)

// ScanDir locates projects.csv and change_orders.csv in the data directory.
// Both files must exist; a missing file is terminal for the run (there is
// no partial-dashboard mode).
func ScanDir(dataDir string) ([]DiscoveredFile, error) {
	wanted := []struct {
		name string
		kind FileKind
	}{
		{"projects.csv", KindProjects},
		{"change_orders.csv", KindChangeOrders},
	}

	var files []DiscoveredFile
	for _, w := range wanted {
		path := filepath.Join(dataDir, w.name)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("missing %s in %s", w.name, dataDir)
			}
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory", path)
		}
		files = append(files, DiscoveredFile{Path: path, Kind: w.kind})
	}

	return files, nil
}
