/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package claims

// WebhookRequest is posted to the tenant claims webhook.
type WebhookRequest struct {
	TenantID                  string `json:"tenant_id"`
	CredentialConfigurationID string `json:"credential_configuration_id"`
	AuthorizationIdentity     string `json:"authorization_identity"`
}

// WebhookResponse is returned by the webhook with 200 (claims) or 202 (deferred).
type WebhookResponse struct {
	Claims map[string]interface{} `json:"claims,omitempty"`
	// Interval is the recommended poll interval in seconds for a deferred answer.
	Interval int `json:"interval,omitempty"`
}
