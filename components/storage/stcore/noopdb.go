package stcore

import "github.com/open-control-systems/net-resolver/components/status"

// NoopDB is a non-operational database, nothing is ever stored.
type NoopDB struct{}

// Read always reports missing data.
func (*NoopDB) Read(_ string) (Blob, error) {
	return Blob{}, status.StatusNoData
}

// Write drops the blob.
func (*NoopDB) Write(_ string, _ Blob) error {
	return nil
}

// Remove is non-operational.
func (*NoopDB) Remove(_ string) error {
	return nil
}

// ForEach never calls fn.
func (*NoopDB) ForEach(_ func(key string, b Blob) error) error {
	return nil
}

// Close is non-operational.
func (*NoopDB) Close() error {
	return nil
}
