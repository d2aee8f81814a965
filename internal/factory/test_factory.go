package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/highwayhustle/backend/internal/dependencies/mocks"
	"github.com/highwayhustle/backend/internal/ledger"
	"github.com/highwayhustle/backend/internal/model"
	"github.com/highwayhustle/backend/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked
// dependencies. No mirror contracts are configured, so dispatched
// events are dropped.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	dispatcher := ledger.NewDispatcher(map[model.MirrorCategory]ledger.Mirror{}, time.Second, logger)

	app := newWithDependencies(store, mockClock, mockRandom, dispatcher, logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
