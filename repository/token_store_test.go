// file: repository/token_store_test.go

package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rajalakshmi-growphil/zoho-crm-integration/logger"
	"github.com/rajalakshmi-growphil/zoho-crm-integration/model"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newTestStore(t *testing.T) *FileTokenStore {
	return NewFileTokenStore(filepath.Join(t.TempDir(), "tokens.json"))
}

func TestFileTokenStore_LoadAbsentFile(t *testing.T) {
	store := newTestStore(t)

	record, err := store.Load()

	assert.NoError(t, err, "A missing token file means a fresh install, not a failure")
	assert.Equal(t, &model.TokenRecord{}, record)
}

func TestFileTokenStore_SaveAndLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	saved := &model.TokenRecord{
		RefreshToken: "refresh-123",
		AccessToken:  "access-456",
		APIDomain:    "https://www.zohoapis.in",
	}

	err := store.Save(saved)
	assert.NoError(t, err)

	loaded, err := store.Load()
	assert.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestFileTokenStore_LoadIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Save(&model.TokenRecord{RefreshToken: "r", AccessToken: "a", APIDomain: "d"}))

	first, err := store.Load()
	assert.NoError(t, err)
	second, err := store.Load()
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFileTokenStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))
	store := NewFileTokenStore(path)

	_, err := store.Load()

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)
}

func TestFileTokenStore_SaveOverwritesFully(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Save(&model.TokenRecord{RefreshToken: "old", AccessToken: "old", APIDomain: "old"}))

	assert.NoError(t, store.Save(&model.TokenRecord{AccessToken: "new"}))

	loaded, err := store.Load()
	assert.NoError(t, err)
	assert.Empty(t, loaded.RefreshToken, "Save replaces the whole record, no merging")
	assert.Equal(t, "new", loaded.AccessToken)
}

func TestFileTokenStore_UpdatePreservesOtherFields(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Save(&model.TokenRecord{RefreshToken: "keep-me", AccessToken: "stale", APIDomain: "stale"}))

	updated, err := store.Update(func(r *model.TokenRecord) error {
		r.AccessToken = "fresh"
		r.APIDomain = "https://www.zohoapis.in"
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "keep-me", updated.RefreshToken)
	assert.Equal(t, "fresh", updated.AccessToken)

	loaded, err := store.Load()
	assert.NoError(t, err)
	assert.Equal(t, updated, loaded)
}

func TestFileTokenStore_ConcurrentUpdatesLoseNoWrites(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Save(&model.TokenRecord{RefreshToken: "r"}))

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(func(r *model.TokenRecord) error {
				r.APIDomain += "x"
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	loaded, err := store.Load()
	assert.NoError(t, err)
	assert.Equal(t, writers, len(loaded.APIDomain), "every read-modify-write cycle must be applied exactly once")
	assert.Equal(t, "r", loaded.RefreshToken)
}

func TestFileTokenStore_UpdateCallbackError(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Save(&model.TokenRecord{AccessToken: "before"}))

	_, err := store.Update(func(r *model.TokenRecord) error {
		r.AccessToken = "after"
		return fmt.Errorf("boom")
	})
	assert.Error(t, err)

	loaded, err := store.Load()
	assert.NoError(t, err)
	assert.Equal(t, "before", loaded.AccessToken, "a failed update must not persist anything")
}
