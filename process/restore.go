package process

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

const copyWorkers = 5

// ExecuteCopies runs the resolver's copy plan. Each copy is independent, so
// the work fans out over a small pool. Failures are logged and skipped; the
// count of completed copies comes back.
func ExecuteCopies(copies []CopyInstruction, logger zerolog.Logger) int {
	if len(copies) == 0 {
		return 0
	}

	cchan := make(chan CopyInstruction, len(copies))
	for _, c := range copies {
		cchan <- c
	}
	close(cchan)

	var done int64
	var wg sync.WaitGroup
	for i := 0; i < copyWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range cchan {
				if err := copyFile(c.Source, c.Dest); err != nil {
					logger.Error().Err(err).Str("attachment", c.AttachmentId).Msg("restoring attachment")
					continue
				}
				logger.Debug().Str("source", c.Source).Str("dest", c.Dest).Msg("restored attachment")
				atomic.AddInt64(&done, 1)
			}
		}()
	}
	wg.Wait()

	return int(done)
}

func copyFile(src, dest string) error {
	err := os.MkdirAll(filepath.Dir(dest), os.ModePerm)
	if err != nil {
		return fmt.Errorf("couldn't create dir structure %s. %w", filepath.Dir(dest), err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening attachment source %s. %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.ModePerm)
	if err != nil {
		return fmt.Errorf("opening restore target %s. %w", dest, err)
	}
	defer out.Close()

	if _, err = io.Copy(out, in); err != nil {
		return fmt.Errorf("copying %s to %s. %w", src, dest, err)
	}
	return nil
}
