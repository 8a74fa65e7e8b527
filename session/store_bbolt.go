package session

import (
	"fmt"

	"go.etcd.io/bbolt"
)

var (
	credentialBucket = []byte("session")
	credentialKey    = []byte("token")
)

// BoltStore is a CredentialStore backed by a BBolt database file. The
// credential survives process restarts.
type BoltStore struct {
	db *bbolt.DB
}

var _ CredentialStore = (*BoltStore)(nil)

// NewBoltStore returns a CredentialStore backed by the given BBolt database.
func NewBoltStore(db *bbolt.DB) *BoltStore {
	return &BoltStore{db: db}
}

// NewBoltStoreFromFile opens a BBolt database at the given path and returns
// a new BoltStore.
func NewBoltStoreFromFile(path string, options *bbolt.Options) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o600, options)
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db: %w", err)
	}
	return NewBoltStore(db), nil
}

// Close closes the underlying BBolt database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) Load() (string, error) {
	var token string
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(credentialBucket)
		if b == nil {
			return ErrNoCredential
		}
		data := b.Get(credentialKey)
		if data == nil {
			return ErrNoCredential
		}
		token = string(data)
		return nil
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *BoltStore) Save(token string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(credentialBucket)
		if err != nil {
			return err
		}
		return b.Put(credentialKey, []byte(token))
	})
}

func (s *BoltStore) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(credentialBucket)
		if b == nil {
			return nil
		}
		return b.Delete(credentialKey)
	})
}
