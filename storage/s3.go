package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	log "github.com/sirupsen/logrus"

	"github.com/owservable/folders/config"
)

const s3Delimiter = "/"

// S3API is the subset of the S3 client used by S3Filesystem.
type S3API interface {
	s3.ListObjectsV2APIClient
	s3.HeadObjectAPIClient
}

// S3Filesystem maps a bucket onto a directory tree: key prefixes ending in "/"
// are directories, objects are files. Paths are slash separated keys relative
// to the bucket; "." and "/" denote the bucket root. S3 has no symbolic links.
type S3Filesystem struct {
	Bucket  string
	Timeout time.Duration
	client  S3API
}

func NewS3Filesystem(bucket string, client S3API, timeout time.Duration) *S3Filesystem {
	return &S3Filesystem{Bucket: bucket, Timeout: timeout, client: client}
}

// NewS3FilesystemFromConfig builds the S3 client for a configured source.
func NewS3FilesystemFromConfig(c *config.S3Source) (*S3Filesystem, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.Region),
	}

	if c.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, c.Token),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build S3 client: %w", err)
	}

	if c.RoleArn != "" {
		log.Debugf("Assuming role %s for bucket %s", c.RoleArn, c.Bucket)
		provider := stscreds.NewAssumeRoleProvider(sts.NewFromConfig(cfg), c.RoleArn)
		cfg.Credentials = aws.NewCredentialsCache(provider)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = c.ForcePathStyle
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
	})

	return NewS3Filesystem(c.Bucket, client, c.Timeout), nil
}

func (c *S3Filesystem) ReadDirNames(dir string) ([]string, error) {
	ctx, cancel := c.context()
	defer cancel()

	prefix := directoryPrefix(dir)
	paginator := s3.NewListObjectsV2Paginator(c.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(c.Bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String(s3Delimiter),
	})

	var names []string
	exists := prefix == ""

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		for _, commonPrefix := range page.CommonPrefixes {
			exists = true
			name := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(commonPrefix.Prefix), prefix), s3Delimiter)
			if name != "" {
				names = append(names, name)
			}
		}

		for _, object := range page.Contents {
			exists = true
			// a key equal to the prefix is a directory marker, not an entry
			if name := strings.TrimPrefix(aws.ToString(object.Key), prefix); name != "" {
				names = append(names, name)
			}
		}
	}

	if !exists {
		return nil, &fs.PathError{Op: "readdir", Path: dir, Err: fs.ErrNotExist}
	}

	log.Debugf("Retrieved %d entries below %s/%s", len(names), c.Bucket, prefix)

	slices.Sort(names)
	return slices.Compact(names), nil
}

func (c *S3Filesystem) Lstat(name string) (fs.FileInfo, error) {
	key := objectKey(name)
	if key == "" {
		return &objectInfo{name: s3Delimiter, dir: true}, nil
	}

	ctx, cancel := c.context()
	defer cancel()

	head, err := c.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.Bucket),
		Key:    aws.String(key),
	})

	if err == nil {
		return &objectInfo{
			name:    path.Base(key),
			size:    aws.ToInt64(head.ContentLength),
			modTime: aws.ToTime(head.LastModified),
		}, nil
	}

	if !isNotFound(err) {
		return nil, err
	}

	// no object with that key, but it may still be a prefix
	list, err := c.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.Bucket),
		Prefix:  aws.String(key + s3Delimiter),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}

	if len(list.Contents) == 0 && len(list.CommonPrefixes) == 0 {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: fs.ErrNotExist}
	}

	return &objectInfo{name: path.Base(key), dir: true}, nil
}

func (*S3Filesystem) Join(elem ...string) string {
	return path.Join(elem...)
}

func (c *S3Filesystem) context() (context.Context, context.CancelFunc) {
	if c.Timeout > 0 {
		return context.WithTimeout(context.Background(), c.Timeout)
	}
	return context.WithCancel(context.Background())
}

// objectKey converts a path into an object key without leading or trailing
// slashes. The bucket root is the empty key.
func objectKey(name string) string {
	return strings.Trim(path.Clean(s3Delimiter+name), s3Delimiter)
}

func directoryPrefix(dir string) string {
	key := objectKey(dir)
	if key == "" {
		return ""
	}
	return key + s3Delimiter
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}

	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}

	return false
}
