/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statuslist

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vcs-issuance/internal/logfields"
	"github.com/trustbloc/vcs-issuance/pkg/doc/vc/bitstring"
	"github.com/trustbloc/vcs-issuance/pkg/locker"
)

var logger = log.New("status-list-registry")

const (
	DefaultListSize     = 131072
	DefaultBitsPerEntry = 1
)

type metricsProvider interface {
	StatusListCreated(bitsPerEntry int)
}

// Config holds the configuration for the Registry.
type Config struct {
	Store       Store
	Publisher   Publisher
	Locker      locker.Locker
	Clock       clock.Clock
	Metrics     metricsProvider
	ExternalURL string
	// DefaultSize is used when Allocate is called with a non-positive size.
	DefaultSize int
}

// Registry assigns status list indexes to credentials and mutates their status.
type Registry struct {
	store       Store
	publisher   Publisher
	locker      locker.Locker
	clock       clock.Clock
	metrics     metricsProvider
	externalURL string
	defaultSize int
}

// New returns new status list registry.
func New(config *Config) *Registry {
	r := &Registry{
		store:       config.Store,
		publisher:   config.Publisher,
		locker:      config.Locker,
		clock:       config.Clock,
		metrics:     config.Metrics,
		externalURL: strings.TrimSuffix(config.ExternalURL, "/"),
		defaultSize: config.DefaultSize,
	}

	if r.locker == nil {
		r.locker = locker.NewKeyedMutex()
	}

	if r.clock == nil {
		r.clock = clock.New()
	}

	if r.defaultSize <= 0 {
		r.defaultSize = DefaultListSize
	}

	return r
}

// Allocate reserves the next free index in the tenant's current list for the
// given width, creating a new list when the current one is exhausted. The
// reservation is durable when Allocate returns.
func (r *Registry) Allocate(
	ctx context.Context,
	tenantID string,
	bitsPerEntry int,
	size int,
) (*IndexReference, error) {
	if !bitstring.ValidBitsPerEntry(bitsPerEntry) {
		return nil, ErrInvalidBitsPerEntry
	}

	if size <= 0 {
		size = r.defaultSize
	}

	mu := r.locker.NewMutex("statuslist-alloc/" + tenantID + "/" + strconv.Itoa(bitsPerEntry))

	if err := mu.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("lock allocation: %w", err)
	}

	defer func() {
		if _, err := mu.Unlock(); err != nil {
			logger.Warnc(ctx, "Failed to release allocation lock", log.WithError(err))
		}
	}()

	list, err := r.store.Current(ctx, tenantID, bitsPerEntry)
	if err != nil {
		if !errors.Is(err, ErrDataNotFound) {
			return nil, fmt.Errorf("get current status list: %w", err)
		}

		list, err = r.createList(ctx, tenantID, bitsPerEntry, size, 0)
		if err != nil {
			return nil, err
		}
	}

	for {
		index, reserveErr := r.store.ReserveIndex(ctx, list.ID)
		if reserveErr == nil {
			logger.Debugc(ctx, "Status list index allocated",
				logfields.WithTenantID(tenantID), logfields.WithListID(list.ID), logfields.WithIndex(index))

			return &IndexReference{
				ListID:       list.ID,
				Index:        index,
				URI:          r.listURI(tenantID, list.ID),
				BitsPerEntry: bitsPerEntry,
			}, nil
		}

		if !errors.Is(reserveErr, ErrListExhausted) {
			return nil, fmt.Errorf("reserve status list index: %w", reserveErr)
		}

		logger.Debugc(ctx, "Status list exhausted, creating next list",
			logfields.WithTenantID(tenantID), logfields.WithListID(list.ID))

		list, err = r.createList(ctx, tenantID, bitsPerEntry, size, list.Sequence+1)
		if err != nil {
			return nil, err
		}
	}
}

func (r *Registry) createList(
	ctx context.Context,
	tenantID string,
	bitsPerEntry int,
	size int,
	sequence int,
) (*StatusList, error) {
	bs, err := bitstring.NewBitString(size, bitstring.WithBitsPerEntry(bitsPerEntry))
	if err != nil {
		return nil, fmt.Errorf("create bit string: %w", err)
	}

	list := &StatusList{
		ID:           uuid.NewString(),
		TenantID:     tenantID,
		Sequence:     sequence,
		BitsPerEntry: bitsPerEntry,
		Size:         size,
		Bits:         bs.Bytes(),
		CreatedAt:    r.clock.Now().UTC(),
	}

	if err = r.store.Create(ctx, list); err != nil {
		if !errors.Is(err, ErrListExists) {
			return nil, fmt.Errorf("create status list: %w", err)
		}

		// Another instance created the list first.
		existing, getErr := r.store.Current(ctx, tenantID, bitsPerEntry)
		if getErr != nil {
			return nil, fmt.Errorf("get current status list: %w", getErr)
		}

		return existing, nil
	}

	logger.Infoc(ctx, "Status list created", logfields.WithTenantID(tenantID),
		logfields.WithListID(list.ID), logfields.WithBitsPerEntry(bitsPerEntry))

	if r.metrics != nil {
		r.metrics.StatusListCreated(bitsPerEntry)
	}

	r.publish(ctx, list)

	return list, nil
}

// SetStatus writes value into the entry at index. The index must have been
// handed out by Allocate.
func (r *Registry) SetStatus(ctx context.Context, listID string, index int, value uint8) error {
	mu := r.locker.NewMutex("statuslist/" + listID)

	if err := mu.LockContext(ctx); err != nil {
		return fmt.Errorf("lock status list: %w", err)
	}

	defer func() {
		if _, err := mu.Unlock(); err != nil {
			logger.Warnc(ctx, "Failed to release status list lock", log.WithError(err))
		}
	}()

	list, err := r.store.Get(ctx, listID)
	if err != nil {
		return fmt.Errorf("get status list: %w", err)
	}

	if int(value) >= 1<<list.BitsPerEntry {
		return ErrInvalidStatusValue
	}

	if index < 0 || index >= list.Size {
		return ErrIndexOutOfRange
	}

	if index >= list.NextIndex {
		return ErrIndexNotAllocated
	}

	bs, err := bitstring.FromBytes(list.Bits, list.Size, bitstring.WithBitsPerEntry(list.BitsPerEntry))
	if err != nil {
		return fmt.Errorf("load bit string: %w", err)
	}

	if err = bs.Set(index, value); err != nil {
		return fmt.Errorf("set status: %w", err)
	}

	list.Bits = bs.Bytes()

	if err = r.store.UpdateBits(ctx, listID, list.Bits); err != nil {
		return fmt.Errorf("update status list: %w", err)
	}

	logger.Debugc(ctx, "Status updated", logfields.WithTenantID(list.TenantID),
		logfields.WithListID(listID), logfields.WithIndex(index))

	r.publish(ctx, list)

	return nil
}

// GetStatus returns the value stored at index.
func (r *Registry) GetStatus(ctx context.Context, listID string, index int) (uint8, error) {
	list, err := r.store.Get(ctx, listID)
	if err != nil {
		return 0, fmt.Errorf("get status list: %w", err)
	}

	if index < 0 || index >= list.Size {
		return 0, ErrIndexOutOfRange
	}

	bs, err := bitstring.FromBytes(list.Bits, list.Size, bitstring.WithBitsPerEntry(list.BitsPerEntry))
	if err != nil {
		return 0, fmt.Errorf("load bit string: %w", err)
	}

	return bs.Get(index)
}

// Get returns the list.
func (r *Registry) Get(ctx context.Context, listID string) (*StatusList, error) {
	return r.store.Get(ctx, listID)
}

// Serialize returns the packed bytes of the list.
func (r *Registry) Serialize(ctx context.Context, listID string) ([]byte, error) {
	list, err := r.store.Get(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("get status list: %w", err)
	}

	return list.Bits, nil
}

// Encode returns the publication payload of the list.
func (r *Registry) Encode(ctx context.Context, listID string) (*EncodedList, error) {
	list, err := r.store.Get(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("get status list: %w", err)
	}

	return r.encode(list)
}

func (r *Registry) encode(list *StatusList) (*EncodedList, error) {
	bs, err := bitstring.FromBytes(list.Bits, list.Size, bitstring.WithBitsPerEntry(list.BitsPerEntry))
	if err != nil {
		return nil, fmt.Errorf("load bit string: %w", err)
	}

	encoded, err := bs.EncodeBits()
	if err != nil {
		return nil, fmt.Errorf("encode bit string: %w", err)
	}

	return &EncodedList{
		ID:           list.ID,
		TenantID:     list.TenantID,
		URI:          r.listURI(list.TenantID, list.ID),
		BitsPerEntry: list.BitsPerEntry,
		Size:         list.Size,
		EncodedList:  encoded,
		UpdatedAt:    r.clock.Now().UTC(),
	}, nil
}

// Aggregate returns the URIs of all tenant lists in creation order.
func (r *Registry) Aggregate(ctx context.Context, tenantID string) ([]string, error) {
	lists, err := r.store.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("find status lists: %w", err)
	}

	slices.SortStableFunc(lists, func(a, b *StatusList) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}

		return cmp.Compare(a.Sequence, b.Sequence)
	})

	uris := make([]string, 0, len(lists))
	for _, l := range lists {
		uris = append(uris, r.listURI(tenantID, l.ID))
	}

	return uris, nil
}

// DeleteTenant removes all lists owned by the tenant.
func (r *Registry) DeleteTenant(ctx context.Context, tenantID string) error {
	if err := r.store.DeleteTenant(ctx, tenantID); err != nil {
		return fmt.Errorf("delete status lists: %w", err)
	}

	return nil
}

// ListURI returns the public location of the list.
func (r *Registry) ListURI(tenantID, listID string) string {
	return r.listURI(tenantID, listID)
}

func (r *Registry) listURI(tenantID, listID string) string {
	return fmt.Sprintf("%s/status-lists/%s/%s", r.externalURL, url.PathEscape(tenantID), url.PathEscape(listID))
}

func (r *Registry) publish(ctx context.Context, list *StatusList) {
	if r.publisher == nil {
		return
	}

	encoded, err := r.encode(list)
	if err != nil {
		logger.Errorc(ctx, "Failed to encode status list for publication",
			logfields.WithListID(list.ID), log.WithError(err))

		return
	}

	if err = r.publisher.Publish(ctx, encoded); err != nil {
		logger.Errorc(ctx, "Failed to publish status list",
			logfields.WithTenantID(list.TenantID), logfields.WithListID(list.ID), log.WithError(err))
	}
}
