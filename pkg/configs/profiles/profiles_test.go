package profiles_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/opst/paikit/pkg/configs/profiles"
)

func selfSignedCA(t *testing.T) []byte {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	tpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "paikit test ca"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign,
	}
	der, err := x509.CreateCertificate(rand.Reader, tpl, tpl, &key.PublicKey, key)
	if err != nil {
		t.Fatal(err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
}

func TestUnmarshal(t *testing.T) {
	store, err := profiles.Unmarshal([]byte(`
default:
    apiRoot: "https://pai.cn-hangzhou.example.com"
    cert:
        ca: BASE64_ENCODED_CERT
    regionId: cn-hangzhou
    workspaceId: "42"
`))
	if err != nil {
		t.Fatalf("failed to unmarshal: %+v", err)
	}

	expected := profiles.ProfileStore{
		"default": {
			ApiRoot:     "https://pai.cn-hangzhou.example.com",
			Cert:        profiles.Cert{CA: "BASE64_ENCODED_CERT"},
			RegionId:    "cn-hangzhou",
			WorkspaceId: "42",
		},
	}
	if diff := cmp.Diff(expected, store); diff != "" {
		t.Errorf("profile store (-want +got):\n%s", diff)
	}
}

func TestProfile_Verify(t *testing.T) {
	ca := base64.StdEncoding.EncodeToString(selfSignedCA(t))

	for name, testcase := range map[string]struct {
		prof      *profiles.Profile
		toBeValid error
	}{
		"all value is valid, it is valid": {
			prof:      &profiles.Profile{ApiRoot: "https://pai.example.com", Cert: profiles.Cert{CA: ca}},
			toBeValid: nil,
		},
		"no CA is ok": {
			prof:      &profiles.Profile{ApiRoot: "https://pai.example.com"},
			toBeValid: nil,
		},
		"when api root is broken, it is not valid": {
			prof:      &profiles.Profile{ApiRoot: "not url"},
			toBeValid: profiles.ErrProfileInvalid,
		},
		"when CA is not PEM, it is not valid": {
			prof: &profiles.Profile{
				ApiRoot: "https://pai.example.com",
				Cert:    profiles.Cert{CA: base64.StdEncoding.EncodeToString([]byte("broken cert"))},
			},
			toBeValid: profiles.ErrProfileInvalid,
		},
	} {
		t.Run(name, func(t *testing.T) {
			if err := testcase.prof.Verify(); !errors.Is(err, testcase.toBeValid) {
				t.Errorf("(actual, expected) = (%v, %v) for %+v", err, testcase.toBeValid, testcase.prof)
			}
		})
	}
}

func TestProfileStore_Save(t *testing.T) {
	t.Run("it saves profiles which can be loaded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".pai", "profile")
		store := profiles.ProfileStore{
			"default": {ApiRoot: "https://pai.example.com", RegionId: "cn-hangzhou"},
			"staging": {ApiRoot: "https://pai-staging.example.com", WorkspaceId: "7"},
		}

		if err := store.Save(path); err != nil {
			t.Fatal(err)
		}

		loaded, err := profiles.LoadProfileStore(path)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(store, loaded); diff != "" {
			t.Errorf("profile store (-want +got):\n%s", diff)
		}

		if runtime.GOOS != "windows" {
			stat, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if perm := stat.Mode().Perm(); perm != 0600 {
				t.Errorf("unexpected permission: %o", perm)
			}
		}
		if _, err := os.Stat(path + ".backup"); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("backup is left: %v", err)
		}
	})

	t.Run("it overwrites the existing store", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile")
		if err := os.WriteFile(path, []byte("old: {apiRoot: 'https://old.example.com'}\n"), 0644); err != nil {
			t.Fatal(err)
		}

		store := profiles.ProfileStore{"new": {ApiRoot: "https://new.example.com"}}
		if err := store.Save(path); err != nil {
			t.Fatal(err)
		}

		loaded, err := profiles.LoadProfileStore(path)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(store, loaded); diff != "" {
			t.Errorf("profile store (-want +got):\n%s", diff)
		}
	})
}

func TestLoadProfileStore(t *testing.T) {
	_, err := profiles.LoadProfileStore(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, profiles.ErrProfileStoreNotFound) {
		t.Errorf("unexpected error: %v", err)
	}
}
