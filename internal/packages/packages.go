// Package packages maps a host to the OS packages automount needs and
// installs them with the system package manager.
package packages

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/conn-castle/allsky-automount/internal/execx"
	"github.com/conn-castle/allsky-automount/internal/host"
	"github.com/conn-castle/allsky-automount/internal/messages"
)

// Key identifies a supported distribution release.
type Key struct {
	Distribution string
	Release      string
}

// Set is an ordered list of package names.
type Set []string

// exfatprogs replaced exfat-utils in Debian 11 and Ubuntu 22.04.
var (
	exfatUtils = Set{"udisks2", "udiskie", "exfat-utils", "dosfstools"}
	exfatProgs = Set{"udisks2", "udiskie", "exfatprogs", "dosfstools"}
)

var table = map[Key]Set{
	{"Raspbian", "11"}:  exfatProgs,
	{"Raspbian", "10"}:  exfatUtils,
	{"Debian", "11"}:    exfatProgs,
	{"Debian", "10"}:    exfatUtils,
	{"Ubuntu", "22.04"}: exfatProgs,
	{"Ubuntu", "20.04"}: exfatUtils,
	{"Ubuntu", "18.04"}: exfatUtils,
}

// UnsupportedPlatformError reports a host with no package table entry.
type UnsupportedPlatformError struct {
	Host host.HostProfile
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf(messages.PackagesUnsupportedFmt, e.Host.Distribution, e.Host.Release, e.Host.Arch)
}

// Resolve returns the package set for p. The result is a copy.
func Resolve(p host.HostProfile) (Set, error) {
	set, ok := table[Key{Distribution: p.Distribution, Release: p.Release}]
	if !ok {
		return nil, &UnsupportedPlatformError{Host: p}
	}
	return append(Set(nil), set...), nil
}

// Supported lists the recognised distribution releases in stable order.
func Supported() []Key {
	keys := make([]Key, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Distribution != keys[j].Distribution {
			return keys[i].Distribution < keys[j].Distribution
		}
		return keys[i].Release < keys[j].Release
	})
	return keys
}

// noninteractive keeps apt from stopping on debconf prompts.
var noninteractive = []string{"DEBIAN_FRONTEND=noninteractive"}

// Install refreshes the package index once, then installs set in a single
// transaction. Either failure is returned unchanged in the chain; nothing is
// retried and packages already installed are left for the operator to inspect.
func Install(ctx context.Context, runner execx.Runner, manager string, set Set) error {
	if len(set) == 0 {
		return errors.New(messages.PackagesEmptySet)
	}
	refresh := execx.Command{Name: manager, Args: []string{"update"}, Env: noninteractive, Sudo: true}
	if err := runner.Run(ctx, refresh); err != nil {
		return fmt.Errorf(messages.PackagesRefreshFailedFmt, err)
	}
	args := append([]string{"install", "-y"}, set...)
	install := execx.Command{Name: manager, Args: args, Env: noninteractive, Sudo: true}
	if err := runner.Run(ctx, install); err != nil {
		return fmt.Errorf(messages.PackagesInstallFailedFmt, err)
	}
	return nil
}
