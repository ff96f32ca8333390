package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
)

// Channel is the NOTIFY channel written by the claims trigger.
const Channel = "claims_changed"

// Listener relays Postgres NOTIFY payloads from the claims trigger into a Bus.
type Listener struct {
	dsn   string
	bus   *Bus
	retry time.Duration
}

func NewListener(dsn string, bus *Bus) *Listener {
	return &Listener{
		dsn:   dsn,
		bus:   bus,
		retry: 2 * time.Second,
	}
}

// Run listens until ctx is cancelled, reconnecting after connection errors.
func (l *Listener) Run(ctx context.Context) error {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("change feed disconnected channel=%s error=%v", Channel, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.retry):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{Channel}.Sanitize()); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	log.Printf("change feed listening channel=%s", Channel)
	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		change, err := DecodeNotification(notification.Payload)
		if err != nil {
			log.Printf("change feed bad payload payload=%q error=%v", notification.Payload, err)
			continue
		}
		l.bus.Publish(change)
	}
}

// DecodeNotification parses a claims trigger payload.
func DecodeNotification(payload string) (ClaimChange, error) {
	var change ClaimChange
	if err := json.Unmarshal([]byte(payload), &change); err != nil {
		return ClaimChange{}, err
	}
	if change.GameID == 0 {
		return ClaimChange{}, errors.New("game_id is required")
	}
	switch change.Op {
	case OpInsert, OpUpdate, OpDelete:
	default:
		return ClaimChange{}, fmt.Errorf("unknown op %q", change.Op)
	}
	return change, nil
}
