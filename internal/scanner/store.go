// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package scanner

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// devicesKey holds the JSON encoded device list.
var devicesKey = []byte("devices:v1")

// DeviceStore persists probed devices so a restart does not re-run the slow
// scanimage probe.
type DeviceStore struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenDeviceStore opens (or creates) a Badger database at dir. An empty dir
// gives an in-memory store. Entries expire after ttl; zero keeps them until
// Clear.
func OpenDeviceStore(dir string, ttl time.Duration) (*DeviceStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open device store: %w", err)
	}
	return &DeviceStore{db: db, ttl: ttl}, nil
}

// Load returns the stored devices. ok is false when nothing is stored.
func (s *DeviceStore) Load() (devices []Device, ok bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(devicesKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get devices: %w", err)
		}
		ok = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &devices)
		})
	})
	if err != nil {
		return nil, false, err
	}
	return devices, ok, nil
}

// Save replaces the stored devices.
func (s *DeviceStore) Save(devices []Device) error {
	data, err := json.Marshal(devices)
	if err != nil {
		return fmt.Errorf("marshal devices: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(devicesKey, data)
		if s.ttl > 0 {
			e = e.WithTTL(s.ttl)
		}
		return txn.SetEntry(e)
	})
}

// Clear forgets the stored devices.
func (s *DeviceStore) Clear() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(devicesKey)
	})
}

// Close closes the underlying database.
func (s *DeviceStore) Close() error {
	return s.db.Close()
}
