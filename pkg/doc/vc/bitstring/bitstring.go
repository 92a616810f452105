/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bitstring

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/klauspost/compress/gzip"
	"github.com/multiformats/go-multibase"
)

const (
	bitsPerByte = 8

	// DefaultEncoding is the multibase encoding used for published status lists.
	DefaultEncoding = multibase.Base64url
)

var (
	// ErrInvalidBitsPerEntry is returned for an entry width other than 1, 2, 4 or 8.
	ErrInvalidBitsPerEntry = errors.New("bits per entry must be one of 1, 2, 4, 8")
	// ErrPositionOutOfRange is returned when the entry position is outside the list.
	ErrPositionOutOfRange = errors.New("position is invalid")
	// ErrValueTooLarge is returned when the value does not fit into one entry.
	ErrValueTooLarge = errors.New("value does not fit into entry")
)

// BitString is a fixed-length sequence of entries, each BitsPerEntry wide,
// packed most-significant bit first: entry i occupies bits [i*b, i*b+b)
// counted from the high bit of byte 0.
type BitString struct {
	bits              []byte
	length            int
	bitsPerEntry      int
	multibaseEncoding multibase.Encoding
}

type Opt func(*options)

type options struct {
	bitsPerEntry      int
	multibaseEncoding multibase.Encoding
}

// WithMultibaseEncoding sets the multibase encoding.
func WithMultibaseEncoding(value multibase.Encoding) Opt {
	return func(options *options) {
		options.multibaseEncoding = value
	}
}

// WithBitsPerEntry sets the entry width. Defaults to 1.
func WithBitsPerEntry(value int) Opt {
	return func(options *options) {
		options.bitsPerEntry = value
	}
}

func getOptions(opts []Opt) *options {
	o := &options{
		bitsPerEntry:      1,
		multibaseEncoding: DefaultEncoding,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// ValidBitsPerEntry reports whether b is a supported entry width.
func ValidBitsPerEntry(b int) bool {
	switch b {
	case 1, 2, 4, 8:
		return true
	default:
		return false
	}
}

// ByteLength returns the packed size in bytes of a list with the given
// number of entries.
func ByteLength(length, bitsPerEntry int) int {
	return (length*bitsPerEntry + bitsPerByte - 1) / bitsPerByte
}

// NewBitString returns a zeroed bit string with room for length entries.
func NewBitString(length int, opts ...Opt) (*BitString, error) {
	o := getOptions(opts)

	if !ValidBitsPerEntry(o.bitsPerEntry) {
		return nil, ErrInvalidBitsPerEntry
	}

	if length < 1 {
		return nil, fmt.Errorf("length must be positive: %d", length)
	}

	return &BitString{
		bits:              make([]byte, ByteLength(length, o.bitsPerEntry)),
		length:            length,
		bitsPerEntry:      o.bitsPerEntry,
		multibaseEncoding: o.multibaseEncoding,
	}, nil
}

// FromBytes wraps already packed bytes. The slice is used as is, not copied.
func FromBytes(bits []byte, length int, opts ...Opt) (*BitString, error) {
	o := getOptions(opts)

	if !ValidBitsPerEntry(o.bitsPerEntry) {
		return nil, ErrInvalidBitsPerEntry
	}

	if expected := ByteLength(length, o.bitsPerEntry); length < 1 || len(bits) != expected {
		return nil, fmt.Errorf("packed length mismatch: got %d bytes, expected %d", len(bits), expected)
	}

	return &BitString{
		bits:              bits,
		length:            length,
		bitsPerEntry:      o.bitsPerEntry,
		multibaseEncoding: o.multibaseEncoding,
	}, nil
}

// DecodeBits decodes the output of EncodeBits.
func DecodeBits(encodedBits string, length int, opts ...Opt) (*BitString, error) {
	o := getOptions(opts)

	encoding, decodedBits, err := multibase.Decode(encodedBits)
	if err != nil {
		return nil, err
	}

	if encoding != o.multibaseEncoding {
		return nil, fmt.Errorf("encoding not supported: %d", encoding)
	}

	r, err := gzip.NewReader(bytes.NewReader(decodedBits))
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if _, err = buf.ReadFrom(r); err != nil {
		return nil, err
	}

	return FromBytes(buf.Bytes(), length, opts...)
}

func (b *BitString) locate(position int) (int, uint, error) {
	if position < 0 || position >= b.length {
		return 0, 0, ErrPositionOutOfRange
	}

	offset := position * b.bitsPerEntry

	return offset / bitsPerByte, uint(bitsPerByte - b.bitsPerEntry - offset%bitsPerByte), nil
}

func (b *BitString) mask() byte {
	return byte(1<<b.bitsPerEntry - 1)
}

// Set stores value at the entry position.
func (b *BitString) Set(position int, value uint8) error {
	nByte, shift, err := b.locate(position)
	if err != nil {
		return err
	}

	if value > b.mask() {
		return ErrValueTooLarge
	}

	b.bits[nByte] = b.bits[nByte]&^(b.mask()<<shift) | value<<shift

	return nil
}

// Get returns the value stored at the entry position.
func (b *BitString) Get(position int) (uint8, error) {
	nByte, shift, err := b.locate(position)
	if err != nil {
		return 0, err
	}

	return (b.bits[nByte] >> shift) & b.mask(), nil
}

// Len returns the number of entries.
func (b *BitString) Len() int {
	return b.length
}

// BitsPerEntry returns the entry width.
func (b *BitString) BitsPerEntry() int {
	return b.bitsPerEntry
}

// Bytes returns a copy of the packed bytes.
func (b *BitString) Bytes() []byte {
	return bytes.Clone(b.bits)
}

// EncodeBits gzips the packed bytes and multibase encodes the result.
func (b *BitString) EncodeBits() (string, error) {
	var buf bytes.Buffer

	w := gzip.NewWriter(&buf)
	if _, err := w.Write(b.bits); err != nil {
		return "", err
	}

	if err := w.Close(); err != nil {
		return "", err
	}

	return multibase.Encode(b.multibaseEncoding, buf.Bytes())
}
