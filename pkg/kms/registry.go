/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package kms

import (
	"fmt"
	"sync"
)

// Registry hands out key managers. The manager built from the default config
// is created once and shared.
type Registry struct {
	defaultCfg *Config

	once       sync.Once
	defaultKM  KeyManager
	defaultErr error
}

func NewRegistry(defaultCfg *Config) *Registry {
	return &Registry{
		defaultCfg: defaultCfg,
	}
}

// GetKeyManager returns the manager for config, or the default manager when config is nil.
func (r *Registry) GetKeyManager(config *Config) (KeyManager, error) {
	if config == nil {
		r.once.Do(func() {
			r.defaultKM, r.defaultErr = newKeyManager(r.defaultCfg)
		})

		return r.defaultKM, r.defaultErr
	}

	return newKeyManager(config)
}

func newKeyManager(config *Config) (KeyManager, error) {
	switch config.KMSType {
	case Local, "":
		km, err := NewLocalKeyManager(config)
		if err != nil {
			return nil, err
		}

		return km, nil
	default:
		return nil, fmt.Errorf("unsupported kms type %q", config.KMSType)
	}
}
