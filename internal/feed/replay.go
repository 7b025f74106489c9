package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

type replayEntry struct {
	Type MessageType `yaml:"type"`
	Data yaml.Node   `yaml:"data"`
}

// Replay feeds a recorded YAML stream (one envelope per document) into sink.
// interval is waited between game_state entries; zero replays as fast as possible.
func Replay(ctx context.Context, r io.Reader, sink Sink, interval time.Duration) (int, error) {
	dec := yaml.NewDecoder(r)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	n := 0
	for {
		var entry replayEntry
		err := dec.Decode(&entry)
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("%w: entry %d: %v", ErrInvalidPayload, n, err)
		}

		if entry.Type == MessageGameState && interval > 0 && n > 0 {
			if timer == nil {
				timer = time.NewTimer(interval)
			} else {
				timer.Reset(interval)
			}
			select {
			case <-ctx.Done():
				return n, ctx.Err()
			case <-timer.C:
			}
		} else if err = ctx.Err(); err != nil {
			return n, err
		}

		if err = dispatch(sink, entry.Type, entry.Data.Decode); err != nil {
			return n, fmt.Errorf("entry %d: %w", n, err)
		}
		n++
	}
}
