package server

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"atspro/internal/config"
	"atspro/internal/errors"
)

// writeSelfSignedCert writes a throwaway certificate pair into dir and
// returns the file paths.
func writeSelfSignedCert(t *testing.T, dir string, notAfter time.Time) (certFile, keyFile string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "localhost"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     notAfter,
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		DNSNames:     []string{"localhost"},
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("failed to create certificate: %v", err)
	}
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatalf("failed to marshal key: %v", err)
	}

	certFile = filepath.Join(dir, "server.crt")
	keyFile = filepath.Join(dir, "server.key")

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})

	if err := os.WriteFile(certFile, certPEM, 0600); err != nil {
		t.Fatalf("failed to write cert: %v", err)
	}
	if err := os.WriteFile(keyFile, keyPEM, 0600); err != nil {
		t.Fatalf("failed to write key: %v", err)
	}
	return certFile, keyFile
}

func testReloaderConfig(certFile, keyFile string) *config.TLSConfig {
	return &config.TLSConfig{
		Mode:     "server",
		CertFile: certFile,
		KeyFile:  keyFile,
		AutoReload: config.AutoReloadConfig{
			Enabled:       true,
			DebounceDelay: 10 * time.Millisecond,
			MaxRetries:    1,
			RetryDelay:    10 * time.Millisecond,
		},
	}
}

func TestCertReloaderStartAndServe(t *testing.T) {
	logger, _ := errors.New("error")
	certFile, keyFile := writeSelfSignedCert(t, t.TempDir(), time.Now().Add(30*24*time.Hour))

	reloader := NewCertReloader(testReloaderConfig(certFile, keyFile), nil, logger)
	if err := reloader.Start(); err != nil {
		t.Fatalf("Start() = %v", err)
	}
	defer func() {
		if err := reloader.Stop(); err != nil {
			t.Errorf("Stop() = %v", err)
		}
	}()

	if !reloader.IsRunning() {
		t.Error("IsRunning() = false after Start")
	}

	cert, err := reloader.GetCertificate(nil)
	if err != nil {
		t.Fatalf("GetCertificate() = %v", err)
	}
	if cert == nil || len(cert.Certificate) == 0 {
		t.Fatal("GetCertificate returned empty certificate")
	}

	ttl, err := reloader.CheckExpiry()
	if err != nil {
		t.Fatalf("CheckExpiry() = %v", err)
	}
	if ttl < 29*24*time.Hour || ttl > 30*24*time.Hour {
		t.Errorf("CheckExpiry() = %v, want ~30 days", ttl)
	}

	files := reloader.WatchedFiles()
	if len(files) != 2 || files[0] != certFile || files[1] != keyFile {
		t.Errorf("WatchedFiles() = %v", files)
	}
}

func TestCertReloaderStartErrors(t *testing.T) {
	logger, _ := errors.New("error")
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  *config.TLSConfig
	}{
		{"missing file paths", testReloaderConfig("", "")},
		{"nonexistent files", testReloaderConfig(filepath.Join(dir, "nope.crt"), filepath.Join(dir, "nope.key"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reloader := NewCertReloader(tt.cfg, nil, logger)
			if err := reloader.Start(); err == nil {
				t.Error("Start() = nil, want error")
				_ = reloader.Stop()
			}
		})
	}
}

func TestCertReloaderMetricsSnapshot(t *testing.T) {
	logger, _ := errors.New("error")
	certFile, keyFile := writeSelfSignedCert(t, t.TempDir(), time.Now().Add(time.Hour))

	reloader := NewCertReloader(testReloaderConfig(certFile, keyFile), nil, logger)
	if err := reloader.load(); err != nil {
		t.Fatalf("load() = %v", err)
	}

	var gotSuccess bool
	reloader.AddReloadCallback(func(success bool, err error) {
		gotSuccess = success
	})
	reloader.recordReload(true, nil)

	metrics := reloader.Metrics()
	if metrics.ReloadCount != 1 || metrics.ReloadSuccessCount != 1 || metrics.ReloadFailureCount != 0 {
		t.Errorf("metrics = %+v", metrics)
	}
	if !metrics.LastReloadSuccess || metrics.LastReloadError != "" {
		t.Errorf("metrics = %+v", metrics)
	}
	if !gotSuccess {
		t.Error("reload callback not invoked with success")
	}
}
