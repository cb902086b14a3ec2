package sysnet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"
	"sync"

	"github.com/open-control-systems/net-resolver/components/status"
	"github.com/open-control-systems/net-resolver/components/storage/stcore"
)

// HostsItem is a single static host entry.
type HostsItem struct {
	Host  string       `json:"host"`
	Addrs []netip.Addr `json:"addrs"`
}

// HostsStore is a persistent table of static host addresses, similar to /etc/hosts.
//
// Remarks:
//   - Host names are case-insensitive.
//   - Can be used from multiple goroutines.
type HostsStore struct {
	mu sync.Mutex
	db stcore.DB
}

// NewHostsStore is an initialization of HostsStore.
//
// Parameters:
//   - db to persist host entries.
func NewHostsStore(db stcore.DB) *HostsStore {
	return &HostsStore{db: db}
}

// Add sets the addresses of host, replacing the previous ones.
func (s *HostsStore) Add(host string, addrs []netip.Addr) error {
	if host == "" {
		return fmt.Errorf("hosts-store: empty host: %w", ErrInvalidEndpoint)
	}

	if len(addrs) == 0 {
		return fmt.Errorf("hosts-store: no addresses: host=%s: %w", host, status.StatusNoData)
	}

	item := HostsItem{
		Host:  normalizeHost(host),
		Addrs: addrs,
	}

	buf, err := json.Marshal(item)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Write(item.Host, stcore.Blob{Data: buf})
}

// Remove removes host from the table.
func (s *HostsStore) Remove(host string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Remove(normalizeHost(host))
}

// GetItems returns all host entries.
func (s *HostsStore) GetItems() ([]HostsItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []HostsItem

	err := s.db.ForEach(func(key string, blob stcore.Blob) error {
		item, err := decodeHostsItem(blob)
		if err != nil {
			return fmt.Errorf("hosts-store: failed to decode entry: host=%s: %w", key, err)
		}

		items = append(items, item)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// Lookup returns the addresses of host stored in the table.
//
// Remarks:
//   - Unknown host is reported as *net.DNSError with IsNotFound set.
func (s *HostsStore) Lookup(_ context.Context, host string) ([]netip.Addr, error) {
	if addr, ok := parseLiteral(host); ok {
		return []netip.Addr{addr}, nil
	}

	s.mu.Lock()
	blob, err := s.db.Read(normalizeHost(host))
	s.mu.Unlock()

	if err != nil {
		if errors.Is(err, status.StatusNoData) {
			return nil, &net.DNSError{
				Err:        "no such host",
				Name:       host,
				Server:     "hosts-store",
				IsNotFound: true,
			}
		}

		return nil, err
	}

	item, err := decodeHostsItem(blob)
	if err != nil {
		return nil, fmt.Errorf("hosts-store: failed to decode entry: host=%s: %w", host, err)
	}

	return item.Addrs, nil
}

func decodeHostsItem(blob stcore.Blob) (HostsItem, error) {
	var item HostsItem

	if err := json.Unmarshal(blob.Data, &item); err != nil {
		return HostsItem{}, err
	}

	return item, nil
}

func normalizeHost(host string) string {
	return strings.ToLower(strings.TrimSuffix(host, "."))
}
