package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePEM(t *testing.T, name, blockType string, der []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	data := pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der})
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestLoadRSAPrivateKeyPKCS1(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	path := writePEM(t, "key.pem", "RSA PRIVATE KEY", x509.MarshalPKCS1PrivateKey(key))

	loaded, err := LoadRSAPrivateKeyFromPEM(path)

	require.NoError(t, err)
	assert.True(t, key.Equal(loaded))
}

func TestLoadRSAPrivateKeyPKCS8(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	path := writePEM(t, "key.pem", "PRIVATE KEY", der)

	loaded, err := LoadRSAPrivateKeyFromPEM(path)

	require.NoError(t, err)
	assert.True(t, key.Equal(loaded))
}

func TestLoadRSAPublicKeyPKIX(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	path := writePEM(t, "key.pub", "PUBLIC KEY", der)

	loaded, err := LoadRSAPublicKeyFromPEM(path)

	require.NoError(t, err)
	assert.True(t, key.PublicKey.Equal(loaded))
}

// Failure messages name the offending file and the block type actually
// found so a misconfigured deployment is diagnosable from the log line.
func TestLoadKeyErrorsNameTheFile(t *testing.T) {
	_, err := LoadRSAPrivateKeyFromPEM(filepath.Join(t.TempDir(), "missing.pem"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.pem")

	path := filepath.Join(t.TempDir(), "garbage.pem")
	require.NoError(t, os.WriteFile(path, []byte("not pem at all"), 0o600))
	_, err = LoadRSAPrivateKeyFromPEM(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no PEM block")
	assert.Contains(t, err.Error(), "garbage.pem")

	certPath := writePEM(t, "cert.pem", "CERTIFICATE", []byte{0x01})
	_, err = LoadRSAPrivateKeyFromPEM(certPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"CERTIFICATE"`)

	_, err = LoadRSAPublicKeyFromPEM(certPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"CERTIFICATE"`)
}
