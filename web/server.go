package web

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goji/httpauth"
	log "github.com/sirupsen/logrus"

	"github.com/owservable/folders/config"
)

const shutdownTimeout = 5 * time.Second

// NewServer wraps handler into a server configured by the global and http
// sections.
func NewServer(cfg *config.Configuration, handler http.Handler) *http.Server {
	httpConfig := cfg.Http()

	if auth := httpConfig.BasicAuth; auth != nil {
		log.Info("Enabling basic authentication")
		handler = httpauth.SimpleBasicAuth(auth.Username, auth.Password)(handler)
	}

	srv := &http.Server{
		Handler:           handler,
		Addr:              fmt.Sprintf(":%d", cfg.Global().HttpPort()),
		MaxHeaderBytes:    int(httpConfig.MaxHeaderBytes),
		ReadHeaderTimeout: httpConfig.ReadHeaderTimeout,
	}

	if userDefinedTlsConfiguration := httpConfig.Tls; userDefinedTlsConfiguration != nil {
		// `strict: true` restricts versions and ciphers to what SSLLabs prefers
		if userDefinedTlsConfiguration.IsStrict {
			srv.TLSConfig = &tls.Config{
				MinVersion:       tls.VersionTLS12,
				CurvePreferences: []tls.CurveID{tls.CurveP521, tls.CurveP384, tls.CurveP256},
				CipherSuites: []uint16{
					tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
					tls.TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA,
					tls.TLS_RSA_WITH_AES_256_GCM_SHA384,
					tls.TLS_RSA_WITH_AES_256_CBC_SHA,
				},
			}
		}

		// an empty map disables HTTP/2
		srv.TLSNextProto = make(map[string]func(*http.Server, *tls.Conn, http.Handler))
	}

	return srv
}

// Serve runs srv until ctx is done, then shuts it down gracefully.
func Serve(ctx context.Context, srv *http.Server, tlsConfig *config.TlsConfiguration) error {
	errs := make(chan error, 1)

	go func() {
		log.Infof("Starting webserver on %s", srv.Addr)

		if tlsConfig != nil {
			errs <- srv.ListenAndServeTLS(tlsConfig.CertificatePath, tlsConfig.PrivateKeyPath)
		} else {
			errs <- srv.ListenAndServe()
		}
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
