package common

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/opst/paikit/pkg/jobenv"
)

// ProfileMarker is a file naming the profile to be used in the directory and its descendants.
const ProfileMarker = ".paiprofile"

type CommonFlags struct {
	Profile      string `flag:"profile" help:"profile name to use"`
	ProfileStore string `flag:"profile-store" help:"path to profile store file"`
	LogLevel     string `flag:"log-level" metavar:"debug|info|warn|error" help:"verbosity of logs written into stderr"`
}

type commonFlagDetection struct {
	home   string
	getenv func(string) string
}

type CommonFlagDetectionOption func(*commonFlagDetection) *commonFlagDetection

func WithHome(home string) CommonFlagDetectionOption {
	return func(opt *commonFlagDetection) *commonFlagDetection {
		opt.home = home
		return opt
	}
}

// WithGetenv replaces the source of environment variables.
func WithGetenv(getenv func(string) string) CommonFlagDetectionOption {
	return func(opt *commonFlagDetection) *commonFlagDetection {
		opt.getenv = getenv
		return opt
	}
}

// Flags detects default values of common flags.
//
// The profile is, in order of precedence, the first line of the nearest
// .paiprofile in from or its ancestors, $PAI_PROFILE, or "default".
// The profile store is ~/.pai/profile.
func Flags(from string, opt ...CommonFlagDetectionOption) (CommonFlags, error) {
	detparam := commonFlagDetection{home: "", getenv: os.Getenv}
	for _, o := range opt {
		detparam = *o(&detparam)
	}

	home := detparam.home
	if home == "" {
		_home, err := os.UserHomeDir()
		if err != nil {
			_home = ""
		}
		home = _home
	}

	if _from, err := filepath.Abs(from); err == nil {
		from = _from
	}

	profile := ""
	for searchpath := from; ; {
		candidate := filepath.Join(searchpath, ProfileMarker)
		if s, err := os.Stat(candidate); err == nil && s.Mode().IsRegular() {
			content, err := os.ReadFile(candidate)
			if err != nil {
				return CommonFlags{}, err
			}
			first, _, _ := strings.Cut(string(content), "\n")
			profile = strings.TrimSpace(first)
			break
		}

		next := filepath.Dir(searchpath)
		if next == searchpath {
			break
		}
		searchpath = next
	}

	if profile == "" {
		profile = detparam.getenv(jobenv.EnvProfile)
	}
	if profile == "" {
		profile = jobenv.DefaultProfile
	}

	return CommonFlags{
		Profile:      profile,
		ProfileStore: filepath.Join(home, ".pai", "profile"),
		LogLevel:     "info",
	}, nil
}
