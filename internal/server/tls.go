package server

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"hirescore/internal/config"
	"hirescore/internal/errors"
	"hirescore/internal/observability"

	"github.com/fsnotify/fsnotify"
)

// CertReloader holds the server certificate and CA pool behind a lock so the
// TLS handshake path always sees a consistent pair, and optionally watches
// the certificate files for changes.
type CertReloader struct {
	mu sync.RWMutex

	cfg config.TLSConfig

	serverCert *tls.Certificate
	caCertPool *x509.CertPool
	certExpiry time.Time
	lastReload time.Time

	fsWatcher     *fsnotify.Watcher
	debounceTimer *time.Timer
	stopChan      chan struct{}
	running       bool

	om     *observability.ObservabilityManager
	logger *errors.Logger
}

// NewCertReloader creates a certificate reloader for the given TLS configuration
func NewCertReloader(cfg config.TLSConfig, om *observability.ObservabilityManager, logger *errors.Logger) *CertReloader {
	return &CertReloader{
		cfg:      cfg,
		om:       om,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Load reads the certificate pair (and CA pool in mutual mode) from disk and
// swaps them in atomically
func (r *CertReloader) Load() error {
	cert, err := tls.LoadX509KeyPair(r.cfg.CertFile, r.cfg.KeyFile)
	if err != nil {
		r.recordReload(false)
		return fmt.Errorf("failed to load certificate pair: %w", err)
	}

	var expiry time.Time
	if len(cert.Certificate) > 0 {
		x509Cert, err := x509.ParseCertificate(cert.Certificate[0])
		if err != nil {
			r.recordReload(false)
			return fmt.Errorf("failed to parse server certificate: %w", err)
		}
		expiry = x509Cert.NotAfter
	}

	var caPool *x509.CertPool
	if r.cfg.Mode == "mutual" {
		caCert, err := os.ReadFile(r.cfg.CAFile)
		if err != nil {
			r.recordReload(false)
			return fmt.Errorf("failed to read CA file: %w", err)
		}
		caPool = x509.NewCertPool()
		if ok := caPool.AppendCertsFromPEM(caCert); !ok {
			r.recordReload(false)
			return fmt.Errorf("failed to parse CA certificate")
		}
	}

	r.mu.Lock()
	r.serverCert = &cert
	r.caCertPool = caPool
	r.certExpiry = expiry
	r.lastReload = time.Now()
	r.mu.Unlock()

	r.recordReload(true)

	if r.logger != nil {
		r.logger.Info("TLS certificates loaded",
			"cert_file", r.cfg.CertFile,
			"expiry", expiry)
	}
	return nil
}

// GetCertificate returns the current server certificate for TLS handshakes
func (r *CertReloader) GetCertificate(hello *tls.ClientHelloInfo) (*tls.Certificate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.serverCert == nil {
		return nil, fmt.Errorf("no server certificate available")
	}

	if !r.certExpiry.IsZero() && time.Now().After(r.certExpiry) {
		if r.logger != nil {
			r.logger.LogError(fmt.Errorf("server certificate expired"), "Server certificate expired",
				"expiry", r.certExpiry,
				"server_name", hello.ServerName)
		}
		return nil, fmt.Errorf("server certificate expired")
	}

	return r.serverCert, nil
}

// CACertPool returns the current CA pool for client certificate verification
func (r *CertReloader) CACertPool() *x509.CertPool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.caCertPool
}

// CheckExpiry returns the time until the server certificate expires
func (r *CertReloader) CheckExpiry() (time.Duration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.certExpiry.IsZero() {
		return 0, fmt.Errorf("no certificate loaded")
	}
	return time.Until(r.certExpiry), nil
}

// Watch starts a file watcher that reloads certificates when any of the
// configured files change. Events are debounced so an atomic cert+key
// rotation triggers a single reload.
func (r *CertReloader) Watch() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return fmt.Errorf("certificate watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	r.fsWatcher = watcher

	for _, file := range r.watchedFiles() {
		if err := watcher.Add(file); err != nil && r.logger != nil {
			r.logger.Warn("Failed to watch certificate file", "file", file, "error", err)
		}
		// Watch the directory too, to catch atomic writes via rename
		if err := watcher.Add(filepath.Dir(file)); err != nil && r.logger != nil {
			r.logger.Warn("Failed to watch certificate directory",
				"directory", filepath.Dir(file), "error", err)
		}
	}

	r.running = true
	go r.watchLoop()

	if r.logger != nil {
		r.logger.Info("Certificate file watcher started",
			"files", r.watchedFiles(),
			"debounce_delay", r.debounceDelay())
	}
	return nil
}

// Stop stops the certificate file watcher
func (r *CertReloader) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return nil
	}

	close(r.stopChan)
	if r.debounceTimer != nil {
		r.debounceTimer.Stop()
	}
	if err := r.fsWatcher.Close(); err != nil {
		if r.logger != nil {
			r.logger.LogError(err, "Failed to close certificate file watcher")
		}
		return err
	}

	r.running = false
	if r.logger != nil {
		r.logger.Info("Certificate file watcher stopped")
	}
	return nil
}

func (r *CertReloader) watchedFiles() []string {
	files := []string{r.cfg.CertFile, r.cfg.KeyFile}
	if r.cfg.Mode == "mutual" && r.cfg.CAFile != "" {
		files = append(files, r.cfg.CAFile)
	}
	return files
}

func (r *CertReloader) debounceDelay() time.Duration {
	if r.cfg.Reload.DebounceDelay > 0 {
		return r.cfg.Reload.DebounceDelay
	}
	return time.Second
}

func (r *CertReloader) watchLoop() {
	for {
		select {
		case event, ok := <-r.fsWatcher.Events:
			if !ok {
				return
			}
			if r.shouldProcessEvent(event) {
				r.scheduleReload()
			}

		case err, ok := <-r.fsWatcher.Errors:
			if !ok {
				return
			}
			if r.logger != nil {
				r.logger.LogError(err, "Certificate file watcher error")
			}

		case <-r.stopChan:
			return
		}
	}
}

func (r *CertReloader) shouldProcessEvent(event fsnotify.Event) bool {
	matched := false
	for _, file := range r.watchedFiles() {
		if event.Name == file || filepath.Base(event.Name) == filepath.Base(file) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (r *CertReloader) scheduleReload() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.debounceTimer != nil {
		r.debounceTimer.Stop()
	}
	r.debounceTimer = time.AfterFunc(r.debounceDelay(), func() {
		if r.logger != nil {
			r.logger.Info("Certificate files changed, reloading")
		}
		if err := r.Load(); err != nil && r.logger != nil {
			r.logger.LogError(err, "Failed to reload certificates")
		}
	})
}

// recordReload records reload and expiry metrics
func (r *CertReloader) recordReload(success bool) {
	if r.om == nil {
		return
	}
	metrics := r.om.GetMetrics()
	ctx := context.Background()
	metrics.RecordCertReload(ctx, success)
	if success && !r.certExpiry.IsZero() {
		metrics.RecordCertExpiry(ctx, time.Until(r.certExpiry).Seconds())
	}
}

// configureTLS builds the tls.Config for the HTTP server, wiring in the
// certificate reloader when hot reload is enabled
func (s *Server) configureTLS(om *observability.ObservabilityManager) (*tls.Config, error) {
	if s.TLSConfig.Mode == "" || s.TLSConfig.Mode == "disabled" {
		return nil, nil
	}

	reloader := NewCertReloader(s.TLSConfig, om, s.Logger)
	if err := reloader.Load(); err != nil {
		return nil, err
	}
	if s.TLSConfig.Reload.Enabled {
		if err := reloader.Watch(); err != nil {
			return nil, fmt.Errorf("failed to start certificate watcher: %w", err)
		}
	}
	s.CertReloader = reloader

	tlsConfig := &tls.Config{
		GetCertificate: reloader.GetCertificate,
		MinVersion:     minTLSVersion(s.TLSConfig.MinVersion),
	}

	if s.TLSConfig.Mode == "mutual" {
		tlsConfig.ClientAuth = clientAuthType(s.TLSConfig.ClientAuthPolicy)
		// Resolve the CA pool per handshake so a reloaded CA takes effect
		// without a server restart
		tlsConfig.GetConfigForClient = func(hello *tls.ClientHelloInfo) (*tls.Config, error) {
			cfg := tlsConfig.Clone()
			cfg.ClientCAs = reloader.CACertPool()
			return cfg, nil
		}
	}

	return tlsConfig, nil
}

func minTLSVersion(version string) uint16 {
	if version == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}

func clientAuthType(policy string) tls.ClientAuthType {
	switch policy {
	case "request":
		return tls.RequestClientCert
	case "verify":
		return tls.VerifyClientCertIfGiven
	default:
		return tls.RequireAndVerifyClientCert
	}
}
