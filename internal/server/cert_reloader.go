package server

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"atspro/internal/config"
	"atspro/internal/errors"
	"atspro/internal/observability"

	"github.com/fsnotify/fsnotify"
)

// ReloadMetrics tracks certificate reload outcomes
type ReloadMetrics struct {
	ReloadCount        int64     `json:"reloadCount"`
	ReloadSuccessCount int64     `json:"reloadSuccessCount"`
	ReloadFailureCount int64     `json:"reloadFailureCount"`
	LastReloadTime     time.Time `json:"lastReloadTime"`
	LastReloadSuccess  bool      `json:"lastReloadSuccess"`
	LastReloadError    string    `json:"lastReloadError,omitempty"`
}

// ReloadCallback is invoked after every reload attempt
type ReloadCallback func(success bool, err error)

// CertReloader serves the TLS server certificate and reloads it from
// disk when the certificate or key file changes. Certificates provided
// as in-memory content cannot be watched and are never routed here.
type CertReloader struct {
	mu   sync.RWMutex
	cert *tls.Certificate
	leaf *x509.Certificate

	certFile string
	keyFile  string

	debounceDelay time.Duration
	maxRetries    int
	retryDelay    time.Duration

	watcher   *fsnotify.Watcher
	done      chan struct{}
	running   bool
	callbacks []ReloadCallback
	metrics   ReloadMetrics

	om     *observability.ObservabilityManager
	logger *errors.Logger
}

// NewCertReloader creates a reloader for file-based certificates
func NewCertReloader(tlsCfg *config.TLSConfig, om *observability.ObservabilityManager, logger *errors.Logger) *CertReloader {
	return &CertReloader{
		certFile:      tlsCfg.CertFile,
		keyFile:       tlsCfg.KeyFile,
		debounceDelay: tlsCfg.AutoReload.DebounceDelay,
		maxRetries:    tlsCfg.AutoReload.MaxRetries,
		retryDelay:    tlsCfg.AutoReload.RetryDelay,
		done:          make(chan struct{}),
		om:            om,
		logger:        logger,
	}
}

// Start loads the initial certificate and begins watching for changes
func (c *CertReloader) Start() error {
	if c.certFile == "" || c.keyFile == "" {
		return fmt.Errorf("certificate auto-reload requires certFile and keyFile paths")
	}

	if err := c.load(); err != nil {
		return fmt.Errorf("failed to load initial certificate: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	c.watcher = watcher

	// Watch the parent directories so atomic renames (the usual
	// certificate rotation pattern) are still observed.
	dirs := map[string]struct{}{
		filepath.Dir(c.certFile): {},
		filepath.Dir(c.keyFile):  {},
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}

	c.mu.Lock()
	c.running = true
	c.mu.Unlock()

	go c.watchLoop()

	c.logger.Info("Certificate auto-reload started",
		"cert_file", c.certFile,
		"key_file", c.keyFile,
		"debounce_delay", c.debounceDelay.String())

	return nil
}

// Stop terminates the watch loop
func (c *CertReloader) Stop() error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil
	}
	c.running = false
	c.mu.Unlock()

	close(c.done)
	if c.watcher != nil {
		return c.watcher.Close()
	}
	return nil
}

// AddReloadCallback registers a callback invoked after each reload attempt
func (c *CertReloader) AddReloadCallback(cb ReloadCallback) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callbacks = append(c.callbacks, cb)
}

// GetCertificate returns the current server certificate for a TLS handshake
func (c *CertReloader) GetCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cert == nil {
		return nil, fmt.Errorf("no certificate loaded")
	}
	return c.cert, nil
}

// CheckExpiry returns the time remaining until the current certificate expires
func (c *CertReloader) CheckExpiry() (time.Duration, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.leaf == nil {
		return 0, fmt.Errorf("no certificate loaded")
	}
	return time.Until(c.leaf.NotAfter), nil
}

// IsRunning reports whether the watch loop is active
func (c *CertReloader) IsRunning() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.running
}

// WatchedFiles returns the certificate files under watch
func (c *CertReloader) WatchedFiles() []string {
	return []string{c.certFile, c.keyFile}
}

// Metrics returns a snapshot of reload statistics
func (c *CertReloader) Metrics() *ReloadMetrics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot := c.metrics
	return &snapshot
}

// watchLoop consumes file events and triggers debounced reloads
func (c *CertReloader) watchLoop() {
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	relevant := map[string]struct{}{
		filepath.Clean(c.certFile): {},
		filepath.Clean(c.keyFile):  {},
	}

	for {
		select {
		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if _, watched := relevant[filepath.Clean(event.Name)]; !watched {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			c.logger.Debug("Certificate file changed",
				"file", event.Name,
				"op", event.Op.String())

			// Collapse bursts of events into a single reload
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(c.debounceDelay, c.reloadWithRetry)

		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			c.logger.LogError(err, "Certificate watcher error")

		case <-c.done:
			return
		}
	}
}

// reloadWithRetry attempts a reload, retrying on failure. Certificate
// rotation often writes cert and key non-atomically, so a mismatched
// pair on the first attempt is expected.
func (c *CertReloader) reloadWithRetry() {
	var err error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.retryDelay):
			case <-c.done:
				return
			}
		}
		if err = c.load(); err == nil {
			c.recordReload(true, nil)
			return
		}
		c.logger.Warn("Certificate reload attempt failed",
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"error", err.Error())
	}
	c.recordReload(false, err)
}

// load reads and validates the certificate pair, then swaps it in
func (c *CertReloader) load() error {
	cert, err := tls.LoadX509KeyPair(c.certFile, c.keyFile)
	if err != nil {
		return fmt.Errorf("failed to load server cert/key from files: %w", err)
	}

	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return fmt.Errorf("failed to parse server certificate: %w", err)
	}

	c.mu.Lock()
	c.cert = &cert
	c.leaf = leaf
	c.mu.Unlock()

	return nil
}

// recordReload updates reload statistics and notifies callbacks
func (c *CertReloader) recordReload(success bool, err error) {
	c.mu.Lock()
	c.metrics.ReloadCount++
	c.metrics.LastReloadTime = time.Now()
	c.metrics.LastReloadSuccess = success
	if success {
		c.metrics.ReloadSuccessCount++
		c.metrics.LastReloadError = ""
	} else {
		c.metrics.ReloadFailureCount++
		if err != nil {
			c.metrics.LastReloadError = err.Error()
		}
	}
	callbacks := make([]ReloadCallback, len(c.callbacks))
	copy(callbacks, c.callbacks)
	leaf := c.leaf
	c.mu.Unlock()

	if c.om != nil {
		ctx := context.Background()
		metrics := c.om.GetMetrics()
		metrics.RecordCertReload(ctx, success, c.om)
		if success && leaf != nil {
			metrics.RecordCertExpiry(ctx, time.Until(leaf.NotAfter).Seconds(), c.om)
		}
	}

	for _, cb := range callbacks {
		cb(success, err)
	}
}
