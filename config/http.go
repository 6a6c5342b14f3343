package config

import (
	"fmt"
	"time"
)

const (
	DefaultMaxHeaderBytes    = 1 << 20
	DefaultReadHeaderTimeout = 10 * time.Second
)

type HttpConfiguration struct {
	BasicAuth         *BasicAuthConfiguration
	Tls               *TlsConfiguration
	MaxHeaderBytes    uint64
	ReadHeaderTimeout time.Duration
}

type BasicAuthConfiguration struct {
	Username string
	Password string
}

type TlsConfiguration struct {
	CertificatePath string
	PrivateKeyPath  string
	IsStrict        bool
}

func parseHttp(cfg Raw) (*HttpConfiguration, error) {
	r := &HttpConfiguration{
		MaxHeaderBytes:    DefaultMaxHeaderBytes,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
	}

	if cfg == nil {
		return r, nil
	}

	if cfg.Has("max_header_bytes") {
		if size := cfg.Bytes("max_header_bytes"); size > 0 {
			r.MaxHeaderBytes = size
		}
	}

	if cfg.Has("read_header_timeout") {
		if timeout := cfg.Duration("read_header_timeout"); timeout > 0 {
			r.ReadHeaderTimeout = timeout
		}
	}

	if auth := cfg.Sub("basic_auth"); auth != nil {
		r.BasicAuth = &BasicAuthConfiguration{
			Username: auth.String("username"),
			Password: auth.String("password"),
		}

		if r.BasicAuth.Username == "" {
			return nil, fmt.Errorf("basic_auth requires a username")
		}
	}

	if tls := cfg.Sub("tls"); tls != nil {
		r.Tls = &TlsConfiguration{
			CertificatePath: tls.String("certificate"),
			PrivateKeyPath:  tls.String("private_key"),
			IsStrict:        tls.Bool("strict"),
		}

		if r.Tls.CertificatePath == "" || r.Tls.PrivateKeyPath == "" {
			return nil, fmt.Errorf("tls requires both certificate and private_key")
		}
	}

	return r, nil
}
