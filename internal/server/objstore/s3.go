package objstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/moviebase/mediavault/internal/common"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Options configures access to one bucket of an S3-compatible service
// (AWS or MinIO via BaseEndpoint).
type Options struct {
	Region       string
	AccessKey    string
	SecretKey    string
	Bucket       string
	BaseEndpoint string
	UsePathStyle bool
}

// S3Gateway implements Gateway on aws-sdk-go-v2.
type S3Gateway struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

func NewS3Gateway(ctx context.Context, opts Options) (*S3Gateway, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})

	return &S3Gateway{
		client:  client,
		presign: newS3PresignClient(client),
		bucket:  opts.Bucket,
	}, nil
}

func (g *S3Gateway) PutObject(ctx context.Context, key string, body io.Reader, contentType string) error {
	in := &s3.PutObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if _, err := g.client.PutObject(ctx, in); err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

func (g *S3Gateway) HeadObject(ctx context.Context, key string) (*ObjectInfo, error) {
	out, err := g.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("head object %s: %w", key, err)
	}

	info := &ObjectInfo{Key: key}
	if out.ContentLength != nil {
		info.Size = *out.ContentLength
	}
	if out.LastModified != nil {
		info.LastModified = *out.LastModified
	}
	return info, nil
}

func (g *S3Gateway) ListObjects(ctx context.Context, prefix, delimiter, continuationToken string) (*Page, error) {
	in := &s3.ListObjectsV2Input{
		Bucket: aws.String(g.bucket),
		Prefix: aws.String(prefix),
	}
	if delimiter != "" {
		in.Delimiter = aws.String(delimiter)
	}
	if continuationToken != "" {
		in.ContinuationToken = aws.String(continuationToken)
	}

	out, err := g.client.ListObjectsV2(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("list objects %s: %w", prefix, err)
	}

	page := &Page{}
	for _, obj := range out.Contents {
		info := ObjectInfo{Key: aws.ToString(obj.Key)}
		if obj.Size != nil {
			info.Size = *obj.Size
		}
		if obj.LastModified != nil {
			info.LastModified = *obj.LastModified
		}
		page.Objects = append(page.Objects, info)
	}
	for _, cp := range out.CommonPrefixes {
		page.CommonPrefixes = append(page.CommonPrefixes, aws.ToString(cp.Prefix))
	}
	if out.IsTruncated != nil && *out.IsTruncated {
		page.NextToken = aws.ToString(out.NextContinuationToken)
	}
	return page, nil
}

func (g *S3Gateway) DeleteObject(ctx context.Context, key string) error {
	_, err := g.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func (g *S3Gateway) CopyObject(ctx context.Context, srcKey, dstKey string) error {
	// CopySource is "bucket/key" with the key URL-escaped.
	src := g.bucket + "/" + url.PathEscape(srcKey)
	_, err := g.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(g.bucket),
		Key:        aws.String(dstKey),
		CopySource: aws.String(src),
	})
	if err != nil {
		return fmt.Errorf("copy object %s -> %s: %w", srcKey, dstKey, err)
	}
	return nil
}

func (g *S3Gateway) PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	in := &s3.PutObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	req, err := presignPutObject(g.presign, ctx, in, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("presign put %s: %w", key, err)
	}
	return req.URL, nil
}

func (g *S3Gateway) PresignGet(ctx context.Context, key string, expires time.Duration, contentDisposition string) (string, error) {
	in := &s3.GetObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	}
	if contentDisposition != "" {
		in.ResponseContentDisposition = aws.String(contentDisposition)
	}

	req, err := presignGetObject(g.presign, ctx, in, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("presign get %s: %w", key, err)
	}
	return req.URL, nil
}

// isNotFound matches the service responses for a missing key: NotFound from
// HeadObject, NoSuchKey from GetObject.
func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey", "404":
			return true
		}
	}
	return false
}
