/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package conditions

import (
	"context"
	"fmt"
	"net/netip"
	"strings"
	"time"

	psnet "github.com/shirou/gopsutil/v3/net"
)

type interfaceLister func(ctx context.Context) (psnet.InterfaceStatList, error)

// InterfaceProbe reads interface addresses through gopsutil.
type InterfaceProbe struct {
	timeout    time.Duration
	interfaces interfaceLister
}

// NewInterfaceProbe returns a probe bounded by timeout.
func NewInterfaceProbe(timeout time.Duration) *InterfaceProbe {
	return &InterfaceProbe{
		timeout:    timeout,
		interfaces: psnet.InterfacesWithContext,
	}
}

type interfaceResult struct {
	list psnet.InterfaceStatList
	err  error
}

// IPv4Addresses returns every IPv4 address outside 127.0.0.0/8 in interface order.
func (p *InterfaceProbe) IPv4Addresses(ctx context.Context) ([]string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	// The lister is not guaranteed to honour ctx. On timeout the goroutine is
	// abandoned; it exits once the lister returns, and the buffered send never blocks.
	resultCh := make(chan interfaceResult, 1)

	go func() {
		list, err := p.interfaces(ctx)
		resultCh <- interfaceResult{list: list, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: listing interfaces: %w", ErrDetectionTimeout, ctx.Err())
	case res := <-resultCh:
		if res.err != nil {
			return nil, fmt.Errorf("%w: listing interfaces: %w", ErrDetectionFailed, res.err)
		}

		return ipv4Addresses(res.list), nil
	}
}

func ipv4Addresses(list psnet.InterfaceStatList) []string {
	ips := make([]string, 0, len(list))

	for _, iface := range list {
		for _, addr := range iface.Addrs {
			ip, ok := parseAddr(addr.Addr)
			if !ok || !ip.Is4() || ip.IsLoopback() {
				continue
			}

			ips = append(ips, ip.String())
		}
	}

	return ips
}

// parseAddr accepts both CIDR notation and bare addresses.
func parseAddr(s string) (netip.Addr, bool) {
	if strings.Contains(s, "/") {
		prefix, err := netip.ParsePrefix(s)
		if err != nil {
			return netip.Addr{}, false
		}

		return prefix.Addr().Unmap(), true
	}

	ip, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, false
	}

	return ip.Unmap(), true
}

// matchesPrefix reports whether any address starts with prefix.
func matchesPrefix(ips []string, prefix string) bool {
	for _, ip := range ips {
		if strings.HasPrefix(ip, prefix) {
			return true
		}
	}

	return false
}
