package config

import (
	"errors"
	"fmt"
	"time"
)

const DefaultRegion = "eu-central-1"

// Source is a named place the traversal operations can run against: either a
// local directory or an S3 bucket.
type Source struct {
	Name      string
	Directory string
	S3        *S3Source
}

type S3Source struct {
	Bucket         string
	Region         string
	AccessKey      string
	SecretKey      string
	Token          string
	Endpoint       string
	RoleArn        string
	ForcePathStyle bool
	Timeout        time.Duration
}

// IsLocal reports whether the source is backed by the local filesystem.
func (s *Source) IsLocal() bool {
	return s.S3 == nil
}

func parseSources(cfg Raw) ([]*Source, error) {
	var sources []*Source

	for _, name := range sortedKeys(cfg) {
		source, err := parseSource(cfg.Sub(name), name)
		if err != nil {
			return nil, fmt.Errorf("source '%s' could not be parsed: %w", name, err)
		}

		sources = append(sources, source)
	}

	return sources, nil
}

func parseSource(cfg Raw, name string) (*Source, error) {
	if !LegalAlias(name) {
		return nil, fmt.Errorf("name %#q contains characters which are not allowed in URLs", name)
	}

	if cfg == nil {
		return nil, errors.New("missing source configuration entries")
	}

	const paramRegion = "region"
	const paramForcePathStyle = "force_path_style"
	const paramAccessKeyId = "access_key_id"
	const paramSecretAccessKey = "secret_access_key"
	const paramEndpoint = "endpoint"
	const paramToken = "token"
	const paramRoleArn = "role_arn"
	const paramTimeout = "timeout"

	// either a local path or an S3 bucket
	if cfg.Has("path") {
		path := cfg.String("path")
		if path == "" {
			return nil, errors.New("parameter 'path' has been set, but is empty")
		}

		return &Source{Name: name, Directory: path}, nil
	}

	s3 := cfg.Sub("s3")
	if s3 == nil {
		return nil, errors.New("either 'path' or 's3' must be configured")
	}

	bucket := s3.String("bucket")
	if bucket == "" {
		return nil, errors.New("parameter 's3.bucket' is missing")
	}

	region := DefaultRegion
	if s3.Has(paramRegion) {
		region = s3.String(paramRegion)
	}

	return &Source{
		Name: name,
		S3: &S3Source{
			Bucket:         bucket,
			Region:         region,
			ForcePathStyle: s3.Bool(paramForcePathStyle),
			AccessKey:      s3.String(paramAccessKeyId),
			SecretKey:      s3.String(paramSecretAccessKey),
			Endpoint:       s3.String(paramEndpoint),
			Token:          s3.String(paramToken),
			RoleArn:        s3.String(paramRoleArn),
			Timeout:        s3.Duration(paramTimeout),
		},
	}, nil
}
