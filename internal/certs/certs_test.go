package certs

import (
	"crypto/x509"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateCertificate(t *testing.T) {
	dir := t.TempDir()
	m := NewFileManager(dir)

	cert, err := m.GetOrCreateCertificate()
	require.NoError(t, err)
	require.Len(t, cert.Certificate, 1)

	x509Cert, err := x509.ParseCertificate(cert.Certificate[0])
	require.NoError(t, err)
	assert.Equal(t, "BiggerNumbers", x509Cert.Subject.Organization[0])
	assert.Contains(t, x509Cert.DNSNames, "localhost")
	assert.NoError(t, x509Cert.VerifyHostname("localhost"))
	assert.True(t, x509Cert.NotAfter.After(time.Now().Add(364*24*time.Hour)),
		"certificate should be valid for about a year")
}

func TestGetOrCreateCertificate_ReusesExisting(t *testing.T) {
	dir := t.TempDir()
	m := NewFileManager(dir)

	first, err := m.GetOrCreateCertificate()
	require.NoError(t, err)

	second, err := m.GetOrCreateCertificate()
	require.NoError(t, err)

	assert.Equal(t, first.Certificate[0], second.Certificate[0])
}
