package service_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
	"github.com/pkordes/travel-planner/internal/service"
)

// ---- helpers ---------------------------------------------------------------

var t0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// clock is a settable time source.
type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func seqIDs() func() uuid.UUID {
	n := 0
	return func() uuid.UUID {
		n++
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte{byte(n >> 8), byte(n)})
	}
}

func opts(c *clock, log *slog.Logger) []service.Option {
	o := []service.Option{service.WithClock(c.Now), service.WithIDs(seqIDs())}
	if log != nil {
		o = append(o, service.WithLogger(log))
	}
	return o
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
}

func get(t *testing.T, kv repo.KVRepo, key string) (string, bool) {
	t.Helper()
	v, ok, err := kv.Get(context.Background(), key)
	require.NoError(t, err)
	return v, ok
}

func set(t *testing.T, kv repo.KVRepo, key, value string) {
	t.Helper()
	require.NoError(t, kv.Set(context.Background(), key, value))
}

var errDisk = errors.New("disk full")

// flakyKV fails writes to the keys in failSet.
type flakyKV struct {
	repo.KVRepo
	failSet map[string]bool
}

func (f *flakyKV) Set(ctx context.Context, key, value string) error {
	if f.failSet[key] {
		return errDisk
	}
	return f.KVRepo.Set(ctx, key, value)
}

// ---- store recovery --------------------------------------------------------

func TestStore_CorruptValue_LoggedAndDeleted(t *testing.T) {
	kv := repo.NewMemoryKV()
	set(t, kv, domain.KeyTrip, "{not json")
	log, buf := bufferLogger()
	svc := service.NewItineraryService(kv, opts(&clock{now: t0}, log)...)

	_, found, err := svc.Get(context.Background())

	require.NoError(t, err)
	assert.False(t, found)
	_, stillThere := get(t, kv, domain.KeyTrip)
	assert.False(t, stillThere)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), domain.KeyTrip)
}
