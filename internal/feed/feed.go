// Package feed adapts upstream state-sync sources to the render host.
package feed

import (
	"errors"
	"fmt"

	"github.com/zeusync/arena/internal/core/arena/model"
	"github.com/zeusync/arena/internal/core/arena/scene"
	"github.com/zeusync/arena/internal/host"
)

// MessageType is the envelope discriminator of upstream messages.
type MessageType string

const (
	MessageGameStart MessageType = "game_start"
	MessageGameState MessageType = "game_state"
	MessageGameOver  MessageType = "game_over"
)

var (
	ErrUnknownMessage = errors.New("unknown message type")
	ErrInvalidPayload = errors.New("invalid message payload")
	ErrDialFailed     = errors.New("dial failed")
)

// Sink consumes decoded messages. *host.Host implements it.
type Sink interface {
	StartGame(g host.GameStart)
	ApplySnapshot(snap *model.GameSnapshot) scene.Outcome
	EndGame()
}

var _ Sink = (*host.Host)(nil)

// dispatch decodes the payload for typ and hands it to sink.
func dispatch(sink Sink, typ MessageType, decode func(v any) error) error {
	switch typ {
	case MessageGameStart:
		var g host.GameStart
		if err := decode(&g); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidPayload, typ, err)
		}
		sink.StartGame(g)
	case MessageGameState:
		var snap model.GameSnapshot
		if err := decode(&snap); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidPayload, typ, err)
		}
		sink.ApplySnapshot(&snap)
	case MessageGameOver:
		sink.EndGame()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, typ)
	}
	return nil
}
