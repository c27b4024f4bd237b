package storage

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hbnb/pkg/types"
)

func TestSQLiteLoadMissingDoesNotCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hbnb.db")
	s := NewSQLiteFile(path)

	snap, ok, err := s.Load()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, snap)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSQLiteStoreLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hbnb.db")
	s := NewSQLiteFile(path)

	require.NoError(t, s.Store(Snapshot{
		"User.u1":  {"id": "u1", "__class__": "User", "email": "a@b.c"},
		"City.c1":  {"id": "c1", "__class__": "City", "name": "Fremont"},
		"Place.p1": {"id": "p1", "__class__": "Place", "longitude": float64(-3)},
	}))
	require.NoError(t, s.Store(Snapshot{
		"User.u1":  {"id": "u1", "__class__": "User", "email": "new@b.c"},
		"Place.p1": {"id": "p1", "__class__": "Place", "longitude": float64(-3)},
	}))

	got, ok, err := s.Load()
	require.NoError(t, err)
	require.True(t, ok)

	want := Snapshot{
		"User.u1":  {"id": "u1", "__class__": "User", "email": "new@b.c"},
		"Place.p1": {"id": "p1", "__class__": "Place", "longitude": json.Number("-3.0")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var kind string
	require.NoError(t, db.QueryRow("SELECT kind FROM objects WHERE key = ?", "User.u1").Scan(&kind))
	assert.Equal(t, types.KindUser, kind)
}

func TestSQLiteCorruptBody(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hbnb.db")
	s := NewSQLiteFile(path)
	require.NoError(t, s.Store(Snapshot{}))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO objects (key, kind, body) VALUES ('User.1', 'User', 'not json')")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, _, err = s.Load()
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestEngineOverSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hbnb.db")
	e := NewEngine(NewSQLiteFile(path))

	p := types.NewPlace()
	p.PriceByNight = 80
	p.AmenityIDs = []string{"wifi"}
	require.NoError(t, e.Persist(p))

	fresh := NewEngine(NewSQLiteFile(path))
	require.NoError(t, fresh.Reload())

	got, ok := fresh.All()[types.KeyOf(p)].(*types.Place)
	require.True(t, ok)
	assert.Equal(t, int64(80), got.PriceByNight)
	assert.Equal(t, []string{"wifi"}, got.AmenityIDs)
	assert.True(t, p.UpdatedAt.Equal(got.UpdatedAt))
}
