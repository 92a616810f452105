/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	cmdutils "github.com/trustbloc/cmdutil-go/pkg/utils/cmd"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vcs-issuance/internal/logfields"
	profileapi "github.com/trustbloc/vcs-issuance/pkg/profile"
)

const (
	commonEnvVarUsageText = "Alternatively, this can be set with the following environment variable: "

	ProfilesFilePathFlagName  = "profiles-file-path"
	profilesFilePathFlagUsage = "Tenant profiles json file path. " + commonEnvVarUsageText + ProfilesFilePathEnvKey
	ProfilesFilePathEnvKey    = "VC_ISSUANCE_PROFILES_FILE_PATH"
)

var logger = log.New("profile-reader")

// Config contain config.
type Config struct {
	CMD *cobra.Command
}

// TenantReader serves tenant profiles loaded from a JSON file.
type TenantReader struct {
	mu      sync.RWMutex
	tenants map[string]*profileapi.Tenant
}

type profileFile struct {
	Tenants []*profileapi.Tenant `json:"tenants"`
}

// AddFlags registers the profile reader flags on the command.
func AddFlags(cmd *cobra.Command) {
	cmd.Flags().String(ProfilesFilePathFlagName, "", profilesFilePathFlagUsage)
}

// NewTenantReader reads the profiles file named by the command flags.
func NewTenantReader(config *Config) (*TenantReader, error) {
	profileJSONFile, err := cmdutils.GetUserSetVarFromString(config.CMD, ProfilesFilePathFlagName,
		ProfilesFilePathEnvKey, false)
	if err != nil {
		return nil, err
	}

	return ReadFile(profileJSONFile)
}

// ReadFile loads and validates tenant profiles from path.
func ReadFile(path string) (*TenantReader, error) {
	jsonBytes, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}

	return Parse(jsonBytes)
}

// Parse loads and validates tenant profiles from JSON.
func Parse(jsonBytes []byte) (*TenantReader, error) {
	var p profileFile
	if err := json.Unmarshal(jsonBytes, &p); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	r := &TenantReader{tenants: make(map[string]*profileapi.Tenant, len(p.Tenants))}

	for _, t := range p.Tenants {
		if t == nil {
			continue
		}

		if err := t.Validate(); err != nil {
			return nil, err
		}

		if _, ok := r.tenants[t.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate tenant %s", profileapi.ErrInvalidProfile, t.ID)
		}

		r.tenants[t.ID] = t

		logger.Info("Tenant profile loaded", logfields.WithTenantID(t.ID))
	}

	return r, nil
}

// GetTenant returns the tenant with the given id.
func (r *TenantReader) GetTenant(_ context.Context, tenantID profileapi.ID) (*profileapi.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tenants[tenantID]
	if !ok {
		return nil, profileapi.ErrTenantNotFound
	}

	return t, nil
}

// Tenants returns all tenants ordered by id.
func (r *TenantReader) Tenants() []*profileapi.Tenant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*profileapi.Tenant, 0, len(r.tenants))
	for _, t := range r.tenants {
		res = append(res, t)
	}

	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })

	return res
}

// DeleteTenant removes the tenant profile so it no longer accepts requests.
func (r *TenantReader) DeleteTenant(_ context.Context, tenantID profileapi.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tenants, tenantID)

	return nil
}
