package viewer

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/philipparndt/meshview/pkg/watcher"
)

// ErrNoFile is returned by WatchReload when the active mesh was not loaded from a file
var ErrNoFile = errors.New("active mesh has no file")

// WatchReload reloads the active file in the background whenever it changes
// on disk. Results are picked up by ApplyPending. The caller closes the
// returned watcher.
func (c *Controller) WatchReload(debounce time.Duration) (*watcher.FileWatcher, error) {
	path := c.path
	if path == "" {
		return nil, ErrNoFile
	}

	fw, err := watcher.NewFileWatcher(debounce, c.log.Named("watcher"))
	if err != nil {
		return nil, err
	}

	err = fw.Watch([]string{path}, func(changed string) {
		c.log.Info("File changed, reloading", zap.String("path", changed))
		c.ReloadAsync(path)
	})
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	fw.Start()
	return fw, nil
}
