package stcore

import (
	"github.com/open-control-systems/net-resolver/components/status"
	"go.etcd.io/bbolt"
)

// BboltDB is a bbolt database where all blobs are kept in a single bucket.
//
// References:
//   - https://github.com/etcd-io/bbolt
type BboltDB struct {
	db     *bbolt.DB
	bucket []byte
}

// OpenBboltDB opens the bbolt database.
//
// Parameters:
//   - dbPath - database file path, if it doesn't exist then it will be created automatically.
//   - bucket - bbolt bucket to operate on.
//   - opts - bbolt options, defaults are used if nil.
func OpenBboltDB(dbPath string, bucket string, opts *bbolt.Options) (*BboltDB, error) {
	db, err := bbolt.Open(dbPath, 0600, opts)
	if err != nil {
		return nil, err
	}

	return &BboltDB{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

// Read reads a blob of data from the bucket.
func (d *BboltDB) Read(key string) (Blob, error) {
	blob := Blob{}

	err := d.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(d.bucket)
		if bucket == nil {
			return status.StatusNoData
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return status.StatusNoData
		}

		// Data is valid only during the transaction.
		blob.Data = append([]byte(nil), data...)

		return nil
	})
	if err != nil {
		return Blob{}, err
	}

	return blob, nil
}

// Write writes a blob to the bucket, the bucket is created if necessary.
func (d *BboltDB) Write(key string, blob Blob) error {
	return d.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(d.bucket)
		if err != nil {
			return err
		}

		return bucket.Put([]byte(key), blob.Data)
	})
}

// Remove removes a blob from the bucket.
func (d *BboltDB) Remove(key string) error {
	return d.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(d.bucket)
		if bucket == nil {
			return nil
		}

		return bucket.Delete([]byte(key))
	})
}

// ForEach iterates over all blobs in the bucket, missing bucket is treated as empty.
func (d *BboltDB) ForEach(fn func(key string, b Blob) error) error {
	return d.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(d.bucket)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			return fn(string(k), Blob{Data: append([]byte(nil), v...)})
		})
	})
}

// Close closes the database file.
func (d *BboltDB) Close() error {
	return d.db.Close()
}
