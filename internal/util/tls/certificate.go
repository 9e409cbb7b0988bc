package tls_utils

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"

	files_utils "workspaces-backend/internal/util/files"
)

const (
	certFileName = "server.crt"
	keyFileName  = "server.key"

	certificateValidity = 10 * 365 * 24 * time.Hour
)

// CertificateManager keeps a self-signed certificate pair inside certsDir.
type CertificateManager struct {
	certsDir  string
	hostNames []string
}

func NewCertificateManager(certsDir string, hostNames ...string) *CertificateManager {
	if len(hostNames) == 0 {
		hostNames = []string{"localhost", "workspaces", "workspaces.local"}
	}

	return &CertificateManager{
		certsDir:  certsDir,
		hostNames: hostNames,
	}
}

// EnsureCertificates returns the cert/key paths, generating a new pair when
// either file is missing.
func (cm *CertificateManager) EnsureCertificates() (certPath, keyPath string, err error) {
	certPath, keyPath = cm.GetCertificatePaths()

	if fileExists(certPath) && fileExists(keyPath) {
		return certPath, keyPath, nil
	}

	if err := files_utils.EnsureDirectories([]string{cm.certsDir}); err != nil {
		return "", "", err
	}

	certPEM, keyPEM, err := cm.generateSelfSigned(time.Now())
	if err != nil {
		return "", "", fmt.Errorf("failed to generate self-signed certificate: %w", err)
	}

	if err := os.WriteFile(certPath, certPEM, 0644); err != nil {
		return "", "", fmt.Errorf("failed to write certificate: %w", err)
	}
	if err := os.WriteFile(keyPath, keyPEM, 0600); err != nil {
		return "", "", fmt.Errorf("failed to write private key: %w", err)
	}

	return certPath, keyPath, nil
}

func (cm *CertificateManager) GetCertificatePaths() (certPath, keyPath string) {
	return filepath.Join(cm.certsDir, certFileName), filepath.Join(cm.certsDir, keyFileName)
}

func (cm *CertificateManager) generateSelfSigned(now time.Time) (certPEM, keyPEM []byte, err error) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate private key: %w", err)
	}

	serialNumber, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate serial number: %w", err)
	}

	template := x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			Organization: []string{"Workspaces"},
			CommonName:   "Workspaces Self-Signed Certificate",
		},
		NotBefore:             now,
		NotAfter:              now.Add(certificateValidity),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		DNSNames:              cm.hostNames,
		IPAddresses:           []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
	}

	derBytes, err := x509.CreateCertificate(
		rand.Reader,
		&template,
		&template,
		&privateKey.PublicKey,
		privateKey,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create certificate: %w", err)
	}

	privBytes, err := x509.MarshalECPrivateKey(privateKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal private key: %w", err)
	}

	certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: derBytes})
	keyPEM = pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: privBytes})

	return certPEM, keyPEM, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
