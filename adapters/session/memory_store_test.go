package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type memoryStoreSuite struct {
	suite.Suite
	store *MemoryStore
}

func (ts *memoryStoreSuite) SetupTest() {
	ts.store = NewMemoryStore(WithMemoryStorePrefix("test:"), WithMemoryStoreTTL(time.Second), WithMemoryStoreSize(1))
}

func (ts *memoryStoreSuite) TearDownTest() {
	ts.store.cache.Clear()
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, new(memoryStoreSuite))
}

func (ts *memoryStoreSuite) TestLoadMissing() {
	got, err := ts.store.Load(context.Background(), "nobody")
	ts.NoError(err)
	ts.Equal(map[string]string{}, got)
}

func (ts *memoryStoreSuite) TestSaveAndLoad() {
	data := map[string]string{"view": "abc", "flash": "xyz"}
	ts.NoError(ts.store.Save(context.Background(), "view-1", data))

	got, err := ts.store.Load(context.Background(), "view-1")
	ts.NoError(err)
	ts.Equal(data, got)

	// 使用前綴作為實際 key
	_, err = ts.store.cache.Get([]byte("test:view-1"))
	ts.NoError(err)
}

func (ts *memoryStoreSuite) TestSaveOverwrites() {
	ts.NoError(ts.store.Save(context.Background(), "view-1", map[string]string{"a": "1", "b": "2"}))
	ts.NoError(ts.store.Save(context.Background(), "view-1", map[string]string{"b": "3"}))

	got, err := ts.store.Load(context.Background(), "view-1")
	ts.NoError(err)
	ts.Equal(map[string]string{"b": "3"}, got)
}

func (ts *memoryStoreSuite) TestSaveEmptyDeletes() {
	ts.NoError(ts.store.Save(context.Background(), "view-1", map[string]string{"a": "1"}))
	ts.NoError(ts.store.Save(context.Background(), "view-1", map[string]string{}))

	got, err := ts.store.Load(context.Background(), "view-1")
	ts.NoError(err)
	ts.Empty(got)
}

func (ts *memoryStoreSuite) TestExpire() {
	ts.NoError(ts.store.Save(context.Background(), "view-1", map[string]string{"a": "1"}))
	time.Sleep(1100 * time.Millisecond)

	got, err := ts.store.Load(context.Background(), "view-1")
	ts.NoError(err)
	ts.Empty(got)
}
