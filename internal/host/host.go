// Package host probes the identity of the machine and the invoking user.
package host

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/conn-castle/allsky-automount/internal/execx"
	"github.com/conn-castle/allsky-automount/internal/messages"
	"github.com/conn-castle/allsky-automount/internal/osrelease"
)

// HostProfile identifies the distribution, release, and CPU architecture.
// It is read once at startup and never modified.
type HostProfile struct {
	Distribution string
	Release      string
	Arch         string
}

func (p HostProfile) String() string {
	return fmt.Sprintf(messages.HostProfileFmt, p.Distribution, p.Release, p.Arch)
}

// User identifies the account running the tool.
type User struct {
	Name string
	UID  int
	Home string
}

// Profile is everything the provisioning steps need to know about the host.
type Profile struct {
	Host HostProfile
	User User
}

// EnvironmentError reports that a host identity could not be determined.
type EnvironmentError struct {
	What string
	Err  error
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf(messages.HostEnvironmentErrorFmt, e.What, e.Err)
}

func (e *EnvironmentError) Unwrap() error {
	return e.Err
}

// Probe reads the host and user identity. It has no side effects.
func Probe(ctx context.Context, sys System) (Profile, error) {
	if sys == nil {
		return Profile{}, errors.New(messages.HostSystemRequired)
	}
	distribution, release, err := probeRelease(ctx, sys)
	if err != nil {
		return Profile{}, err
	}
	arch, err := sys.Machine()
	if err != nil {
		return Profile{}, &EnvironmentError{What: messages.HostWhatArch, Err: err}
	}
	usr, err := probeUser(sys)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		Host: HostProfile{Distribution: distribution, Release: release, Arch: arch},
		User: usr,
	}, nil
}

// probeRelease asks lsb_release for the distribution and release, falling
// back to os-release when lsb_release is not installed.
func probeRelease(ctx context.Context, sys System) (string, string, error) {
	distribution, err := sys.Output(ctx, execx.Command{Name: "lsb_release", Args: []string{"-is"}})
	if errors.Is(err, exec.ErrNotFound) {
		return probeOSRelease(sys)
	}
	if err != nil {
		return "", "", &EnvironmentError{What: messages.HostWhatDistribution, Err: err}
	}
	release, err := sys.Output(ctx, execx.Command{Name: "lsb_release", Args: []string{"-rs"}})
	if err != nil {
		return "", "", &EnvironmentError{What: messages.HostWhatRelease, Err: err}
	}
	return distribution, release, nil
}

func probeOSRelease(sys System) (string, string, error) {
	data, err := sys.ReadFile(osrelease.DefaultPath)
	if err != nil {
		return "", "", &EnvironmentError{What: messages.HostWhatDistribution, Err: err}
	}
	fields, err := osrelease.Parse(string(data))
	if err != nil {
		return "", "", &EnvironmentError{What: messages.HostWhatDistribution, Err: err}
	}
	distribution := osrelease.Distribution(fields)
	if distribution == "" {
		return "", "", &EnvironmentError{
			What: messages.HostWhatDistribution,
			Err:  fmt.Errorf(messages.HostOSReleaseMissingFmt, "NAME", osrelease.DefaultPath),
		}
	}
	release := osrelease.Release(fields)
	if release == "" {
		return "", "", &EnvironmentError{
			What: messages.HostWhatRelease,
			Err:  fmt.Errorf(messages.HostOSReleaseMissingFmt, "VERSION_ID", osrelease.DefaultPath),
		}
	}
	return distribution, release, nil
}

func probeUser(sys System) (User, error) {
	current, err := sys.CurrentUser()
	if err != nil {
		return User{}, &EnvironmentError{What: messages.HostWhatUser, Err: err}
	}
	uid, err := strconv.Atoi(current.Uid)
	if err != nil {
		return User{}, &EnvironmentError{What: messages.HostWhatUser, Err: err}
	}
	name := strings.TrimSpace(current.Username)
	if name == "" {
		return User{}, &EnvironmentError{What: messages.HostWhatUser, Err: errors.New(messages.HostEmptyUsername)}
	}
	home, err := sys.HomeDir()
	if err != nil {
		return User{}, &EnvironmentError{What: messages.HostWhatHome, Err: err}
	}
	return User{Name: name, UID: uid, Home: home}, nil
}
