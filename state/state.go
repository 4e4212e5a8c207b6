package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jellydator/ttlcache/v3"
	"github.com/rotblauer/trackd/geo/track"
	"github.com/rotblauer/trackd/params"
	"go.etcd.io/bbolt"
)

// Store persists reconstructed track paths by session name.
// Opening a writable DB conn will block all other writers and readers
// with essentially a file lock/flock.
type Store struct {
	DB      *bbolt.DB
	Cache   *ttlcache.Cache[string, *track.Path]
	Waiting sync.WaitGroup
	rOnly   bool
}

// NewStore opens (and creates if needed) the track database under root.
func NewStore(root string, readOnly bool) (*Store, error) {
	if err := os.MkdirAll(root, 0770); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(filepath.Join(root, params.TrackDBName),
		0600, &bbolt.Options{
			ReadOnly: readOnly,
		})
	if err != nil {
		return nil, err
	}
	s := &Store{
		DB: db,
		Cache: ttlcache.New[string, *track.Path](
			ttlcache.WithTTL[string, *track.Path](params.CacheBuiltTrackTTL)),
		rOnly: readOnly,
	}
	go s.Cache.Start()
	return s, nil
}

func (s *Store) Wait() {
	s.Waiting.Wait()
}

func (s *Store) Close() error {
	s.Cache.Stop()
	return s.DB.Close()
}

func (s *Store) storeKV(key []byte, data []byte) error {
	if key == nil {
		return fmt.Errorf("storeKV: nil key")
	}
	if data == nil {
		return fmt.Errorf("storeKV: nil data")
	}
	return s.DB.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(params.TrackBucket)
		if err != nil {
			return err
		}
		return bucket.Put(key, data)
	})
}

func (s *Store) readKV(key []byte) ([]byte, error) {
	if key == nil {
		return nil, fmt.Errorf("readKV: nil key")
	}
	var data []byte
	err := s.DB.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(params.TrackBucket)
		if bucket == nil {
			return nil
		}
		if v := bucket.Get(key); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	return data, err
}

// StorePath writes the path under name and caches it.
func (s *Store) StorePath(name string, p *track.Path) error {
	if p == nil {
		return fmt.Errorf("nil path")
	}
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := s.storeKV([]byte(name), b); err != nil {
		return err
	}
	s.Cache.Set(name, p, ttlcache.DefaultTTL)
	return nil
}

// ReadPath returns the path stored under name, consulting the cache first.
// A missing name returns (nil, nil).
func (s *Store) ReadPath(name string) (*track.Path, error) {
	if res := s.Cache.Get(name); res != nil {
		return res.Value(), nil
	}
	b, err := s.readKV([]byte(name))
	if err != nil || b == nil {
		return nil, err
	}
	p := &track.Path{}
	if err := json.Unmarshal(b, p); err != nil {
		return nil, err
	}
	s.Cache.Set(name, p, ttlcache.DefaultTTL)
	return p, nil
}

// ListNames returns the names of all stored paths.
func (s *Store) ListNames() ([]string, error) {
	names := []string{}
	err := s.DB.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(params.TrackBucket)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}
