// Package profiles stores connection settings of the platform API, per name.
package profiles

import (
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/hectane/go-acl"
	yaml "gopkg.in/yaml.v3"
)

var ErrProfileStoreNotFound = errors.New("profile store is not found")
var ErrCannotUpdateProfile = errors.New("cannot update profile store")
var ErrProfileInvalid = errors.New("profile is invalid")

// ProfileStore is a map from profile name to Profile.
type ProfileStore map[string]*Profile

type Cert struct {
	// base64 encoded CA certificate
	CA string `yaml:"ca,omitempty"`
}

// Profile is a set of settings to connect the platform API.
type Profile struct {
	// endpoint of the platform API
	ApiRoot string `yaml:"apiRoot"`

	// cert is a certificate for the API server.
	Cert Cert `yaml:"cert,omitempty"`

	// region where the workspace is. Lineage entities of datasets are recorded in this region.
	RegionId string `yaml:"regionId,omitempty"`

	// default workspace for operations.
	WorkspaceId string `yaml:"workspaceId,omitempty"`
}

// DefaultStorePath is `~/.pai/profile`.
//
// When home directory is unknown, it is relative to the working directory.
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ".pai", "profile")
}

func verifyUrl(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

func verifyPEM(b64cert string) bool {
	bin, err := base64.StdEncoding.DecodeString(b64cert)
	if err != nil {
		return false
	}
	blk, _ := pem.Decode(bin)
	return blk != nil
}

// Verify Profile
//
// # Return
//
// nil if it is valid. Otherwise, ErrProfileInvalid error.
func (p *Profile) Verify() error {
	if !verifyUrl(p.ApiRoot) {
		return fmt.Errorf("%w: apiRoot is not URL: %s", ErrProfileInvalid, p.ApiRoot)
	}
	if p.Cert.CA != "" && !verifyPEM(p.Cert.CA) {
		return fmt.Errorf("%w: cert.ca is not PEM", ErrProfileInvalid)
	}
	return nil
}

// LoadProfileStore loads profile store from file.
func LoadProfileStore(path string) (ProfileStore, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrProfileStoreNotFound, path)
		}
		return nil, err
	}
	return Unmarshal(buf)
}

// Unmarshal profile store from yaml in byte array.
func Unmarshal(buf []byte) (ProfileStore, error) {
	ret := ProfileStore{}
	if err := yaml.Unmarshal(buf, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// Save profile store to file, readable only for the current user.
//
// The previous content is kept as `<path>.backup` until the new content is written.
func (ps ProfileStore) Save(path string) error {
	buf, err := yaml.Marshal(ps)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), os.FileMode(0700)); err != nil {
		return fmt.Errorf("%w: %w", ErrCannotUpdateProfile, err)
	}

	bkpath := path + ".backup"
	prev, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := writeSafeFile(bkpath, prev); err != nil {
			return fmt.Errorf("%w: cannot make backup: %w", ErrCannotUpdateProfile, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// nothing to back up.
	default:
		return fmt.Errorf("%w: %w", ErrCannotUpdateProfile, err)
	}

	if err := writeSafeFile(path, buf); err != nil {
		return fmt.Errorf("%w: %w", ErrCannotUpdateProfile, err)
	}
	os.Remove(bkpath)
	return nil
}

// writeSafeFile writes content into a file which is accessible only by the current user.
//
// Permission is enforced also for an existing file with loose permissions.
func writeSafeFile(path string, content []byte) error {
	f, err := os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, os.FileMode(0600))
	if err != nil {
		return err
	}
	defer f.Close()

	// On Windows, permission can not be applied at creation; it is applied via ACL.
	if err := acl.Chmod(path, os.FileMode(0600)); err != nil {
		return err
	}
	_, err = f.Write(content)
	return err
}
