/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logfields

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log Fields.
const (
	FieldTenantID                  = "tenantID"
	FieldListID                    = "listID"
	FieldIndex                     = "index"
	FieldBitsPerEntry              = "bitsPerEntry"
	FieldTransactionID             = "transactionID"
	FieldSessionID                 = "sessionID"
	FieldCredentialConfigurationID = "credentialConfigurationID"
	FieldRequestState              = "requestState"
	FieldSessionState              = "sessionState"
	FieldErrorCode                 = "errorCode"
	FieldEvent                     = "event"
	FieldUserLogLevel              = "userLogLevel"
	FieldInterval                  = "interval"
	FieldSleep                     = "sleep"
	FieldCount                     = "count"
	FieldHealthCheck               = "healthCheck"
	FieldLogSpec                   = "logSpec"
)

// WithTenantID sets the TenantID field.
func WithTenantID(value string) zap.Field {
	return zap.String(FieldTenantID, value)
}

// WithListID sets the ListID field.
func WithListID(value string) zap.Field {
	return zap.String(FieldListID, value)
}

// WithIndex sets the Index field (status list index).
func WithIndex(value int) zap.Field {
	return zap.Int(FieldIndex, value)
}

// WithBitsPerEntry sets the BitsPerEntry field.
func WithBitsPerEntry(value int) zap.Field {
	return zap.Int(FieldBitsPerEntry, value)
}

// WithTransactionID sets the TransactionID field.
func WithTransactionID(value string) zap.Field {
	return zap.String(FieldTransactionID, value)
}

// WithSessionID sets the SessionID field.
func WithSessionID(value string) zap.Field {
	return zap.String(FieldSessionID, value)
}

// WithCredentialConfigurationID sets the CredentialConfigurationID field.
func WithCredentialConfigurationID(value string) zap.Field {
	return zap.String(FieldCredentialConfigurationID, value)
}

// WithRequestState sets the RequestState field.
func WithRequestState(value string) zap.Field {
	return zap.String(FieldRequestState, value)
}

// WithSessionState sets the SessionState field.
func WithSessionState(value string) zap.Field {
	return zap.String(FieldSessionState, value)
}

// WithErrorCode sets the ErrorCode field.
func WithErrorCode(value string) zap.Field {
	return zap.String(FieldErrorCode, value)
}

// WithEvent sets the Event field.
func WithEvent(event interface{}) zap.Field {
	return zap.Inline(NewObjectMarshaller(FieldEvent, event))
}

// WithUserLogLevel sets the UserLogLevel field.
func WithUserLogLevel(value string) zap.Field {
	return zap.String(FieldUserLogLevel, value)
}

// WithInterval sets the poll Interval field.
func WithInterval(value int) zap.Field {
	return zap.Int(FieldInterval, value)
}

// WithSleep sets the Sleep field.
func WithSleep(sleep time.Duration) zap.Field {
	return zap.Duration(FieldSleep, sleep)
}

// WithCount sets the Count field.
func WithCount(value int) zap.Field {
	return zap.Int(FieldCount, value)
}

// WithHealthCheck sets the HealthCheck field.
func WithHealthCheck(value string) zap.Field {
	return zap.String(FieldHealthCheck, value)
}

// WithLogSpec sets the LogSpec field.
func WithLogSpec(value string) zap.Field {
	return zap.String(FieldLogSpec, value)
}

// ObjectMarshaller uses reflection to marshal an object's fields.
type ObjectMarshaller struct {
	key string
	obj interface{}
}

// NewObjectMarshaller returns a new ObjectMarshaller.
func NewObjectMarshaller(key string, obj interface{}) *ObjectMarshaller {
	return &ObjectMarshaller{key: key, obj: obj}
}

// MarshalLogObject marshals the object's fields.
func (m *ObjectMarshaller) MarshalLogObject(e zapcore.ObjectEncoder) error {
	return e.AddReflected(m.key, m.obj)
}
