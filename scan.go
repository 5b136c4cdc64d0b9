package owedit

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/owedit/owedit/rom"
)

const scanWorkers = 4

// ScanResult identifies one ROM image found below the scanned directory.
type ScanResult struct {
	Path   string
	Title  string
	Layout rom.Layout
	CRC    uint32
}

func findFiles(ctx context.Context, base string) (<-chan string, <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() {
				return nil
			}

			// Nothing valid is bigger than an expanded image plus a copier header
			if info.Size() > rom.ExpandedSize+1024 {
				return nil
			}

			switch filepath.Ext(file) {
			case ".sfc", ".smc":
			default:
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc
}

func scanWorker(ctx context.Context, logger *log.Logger, in <-chan string, out chan<- ScanResult) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			img, err := rom.Open(file)
			if err != nil {
				// Not a loadable image; say why and move on
				logger.Printf("skipping %q: %v\n", file, err)
				continue
			}

			r := ScanResult{
				Path:   file,
				Title:  img.Title(),
				Layout: img.Layout(),
				CRC:    img.CRC32(),
			}

			select {
			case out <- r:
			case <-ctx.Done():
				return
			}
		}
	}()
	return errc
}

// waitForPipeline collects the first error from the pipeline stages. On error
// the context is cancelled so the remaining stages drain and exit; it returns
// only once every stage's error channel has closed, which is the stages' exit
// signal.
func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		if err != nil {
			cancel()
			if first == nil {
				first = err
			}
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks the directory at path and identifies every loadable ROM image
// beneath it. A nil logger discards per-file diagnostics.
func Scan(path string, logger *log.Logger) ([]ScanResult, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	dir, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	files, errc := findFiles(ctx, dir)

	results := make(chan ScanResult)
	errcList := []<-chan error{errc}

	for i := 0; i < scanWorkers; i++ {
		errcList = append(errcList, scanWorker(ctx, logger, files, results))
	}

	var found []ScanResult
	done := make(chan struct{})
	go func() {
		for r := range results {
			found = append(found, r)
		}
		close(done)
	}()

	// Safe to close only after waitForPipeline returns: by then every
	// worker has exited and nothing can send on results anymore.
	err = waitForPipeline(cancelFunc, errcList...)
	close(results)
	<-done

	if err != nil {
		return nil, err
	}

	return found, nil
}
