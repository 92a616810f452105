/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statuslist

import (
	"errors"

	"github.com/trustbloc/vcs-issuance/pkg/doc/vc/bitstring"
)

var (
	ErrDataNotFound = errors.New("data not found")
	// ErrListExists is returned by Store.Create when a list with the same tenant, width and sequence exists.
	ErrListExists = errors.New("status list already exists")
	// ErrListExhausted is returned by Store.ReserveIndex when every index of the list is assigned.
	ErrListExhausted = errors.New("status list exhausted")

	ErrInvalidBitsPerEntry = bitstring.ErrInvalidBitsPerEntry
	ErrInvalidSize         = errors.New("status list size must be positive")
	ErrInvalidStatusValue  = errors.New("status value does not fit into entry")
	ErrIndexOutOfRange     = errors.New("status list index out of range")
	ErrIndexNotAllocated   = errors.New("status list index not allocated")
)
