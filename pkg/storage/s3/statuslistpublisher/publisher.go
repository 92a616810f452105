/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination publisher_mocks_test.go -package statuslistpublisher_test -source=publisher.go -mock_names s3Uploader=MockS3Uploader

package statuslistpublisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/trustbloc/vcs-issuance/pkg/service/statuslist"
)

const (
	contentType           = "application/json"
	cacheControl          = "no-cache"
	amazonPublicDomainFmt = "https://%s.s3.%s.amazonaws.com"
	statusListsPrefix     = "status-lists"
)

type s3Uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher uploads encoded status lists to an S3 bucket.
type Publisher struct {
	s3Client s3Uploader
	bucket   string
	region   string
	hostName string
}

// New creates Publisher.
func New(s3Uploader s3Uploader, bucket, region, hostName string) *Publisher {
	return &Publisher{
		s3Client: s3Uploader,
		bucket:   bucket,
		region:   region,
		hostName: hostName,
	}
}

var _ statuslist.Publisher = (*Publisher)(nil)

// Publish puts the encoded list under status-lists/<tenant>/<list>.
func (p *Publisher) Publish(ctx context.Context, list *statuslist.EncodedList) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal status list: %w", err)
	}

	_, err = p.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Body:         bytes.NewReader(data),
		Key:          aws.String(objectKey(list.TenantID, list.ID)),
		Bucket:       aws.String(p.bucket),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(cacheControl),
	})
	if err != nil {
		return fmt.Errorf("upload status list %s: %w", list.ID, err)
	}

	return nil
}

// ResourceURL returns the public URL of the published list.
func (p *Publisher) ResourceURL(tenantID, listID string) string {
	hostName := fmt.Sprintf(amazonPublicDomainFmt, p.bucket, p.region)

	if p.hostName != "" {
		hostName = fmt.Sprintf("https://%s", p.hostName)
	}

	return fmt.Sprintf("%s/%s", hostName, objectKey(tenantID, listID))
}

func objectKey(tenantID, listID string) string {
	return fmt.Sprintf("%s/%s/%s", statusListsPrefix, url.PathEscape(tenantID), url.PathEscape(listID))
}
