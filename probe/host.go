package probe

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/jongio/scan-patch/updates"
)

// HostInfo describes the machine being scanned.
type HostInfo struct {
	Platform        updates.Platform
	OS              string
	Family          string
	Version         string
	KernelVersion   string
	Hostname        string
	PlatformUnknown bool
}

// DetectHost reads the host's operating system with gopsutil.
// PlatformUnknown is set when the OS has no prober (for example FreeBSD).
func DetectHost(ctx context.Context) (HostInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return HostInfo{}, fmt.Errorf("failed to read host info: %w", err)
	}

	h := HostInfo{
		OS:            info.OS,
		Family:        info.PlatformFamily,
		Version:       info.PlatformVersion,
		KernelVersion: info.KernelVersion,
		Hostname:      info.Hostname,
	}

	platform, err := updates.ParsePlatform(info.OS)
	if err != nil {
		h.PlatformUnknown = true
		return h, nil
	}
	h.Platform = platform
	return h, nil
}

// DetectPlatform returns the prober platform for the running host.
func DetectPlatform(ctx context.Context) (updates.Platform, error) {
	h, err := DetectHost(ctx)
	if err != nil {
		return "", err
	}
	if h.PlatformUnknown {
		return "", fmt.Errorf("no update prober for operating system %q", h.OS)
	}
	return h.Platform, nil
}
