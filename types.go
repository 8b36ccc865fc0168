// Package vcloud is a client for vCloud-style virtualization APIs. The API
// is self describing: every resource advertises the operations available on
// it as typed links, so the client discovers capabilities at runtime from
// the session document instead of hardcoding routes.
package vcloud

import (
	"net"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"inet.af/netaddr"
)

// Link is one hypermedia relation advertised by a parent resource.
type Link struct {
	Type string
	HREF string
	Rel  string
	Name string
}

// ResourceEntity references a manageable object (e.g. a vApp) whose full
// representation must be fetched separately via HREF.
type ResourceEntity struct {
	Type string
	HREF string
	Name string
}

// LinkIndex groups links by their declared media type. Document order is
// preserved within each type; the first link of a type is the one used for
// single-resource lookups.
type LinkIndex map[string][]Link

// First returns the first link of the given media type in document order.
func (li LinkIndex) First(mediaType string) (Link, bool) {
	ls := li[mediaType]
	if len(ls) == 0 {
		return Link{}, false
	}
	return ls[0], true
}

// EntityIndex groups resource entities by their declared media type, with
// the same ordering convention as LinkIndex.
type EntityIndex map[string][]ResourceEntity

// Org is one organizational tenant.
type Org struct {
	Type        string
	HREF        string
	Name        string
	ID          string
	FullName    string
	Description string
	Links       LinkIndex
}

// OrgList is the set of orgs visible to the session.
type OrgList struct {
	Orgs []Org
}

// OrgByName returns the first org whose name matches exactly, or nil if
// there is none. Duplicate names are not an error, first one wins.
func (l *OrgList) OrgByName(name string) *Org {
	for i := range l.Orgs {
		if l.Orgs[i].Name == name {
			return &l.Orgs[i]
		}
	}
	return nil
}

// ComputeCapacity holds the cpu and memory capacity bags of a VDC.
type ComputeCapacity struct {
	CPU    map[string]string
	Memory map[string]string
}

// OrgVdc is one virtual datacenter within an org. Storage and compute are
// generic capacity bags: the field set varies by deployment so values are
// kept as untyped text keyed by local element name.
type OrgVdc struct {
	Type     string
	HREF     string
	Name     string
	ID       string
	Storage  map[string]string
	Compute  ComputeCapacity
	Links    LinkIndex
	Entities EntityIndex
}

// ExtNet is one external (provider) network. Config is the raw
// Configuration fragment as received, left unparsed.
type ExtNet struct {
	Type        string
	HREF        string
	Name        string
	Config      []byte
	ID          string
	Description string
	Links       LinkIndex
}

// ExtNetList is the set of external networks visible to the session.
type ExtNetList struct {
	ExtNets []ExtNet
}

// ExtNetByName returns the first external network whose name matches
// exactly, or nil if there is none.
func (l *ExtNetList) ExtNetByName(name string) *ExtNet {
	for i := range l.ExtNets {
		if l.ExtNets[i].Name == name {
			return &l.ExtNets[i]
		}
	}
	return nil
}

// OrgNet is one organization-scoped network.
type OrgNet struct {
	Name    string
	Gateway string
	Netmask string
	DNS     string
	Ranges  []IpRange
}

// ContainsIP reports whether any of the network's ranges contains ip.
func (n OrgNet) ContainsIP(ip netaddr.IP) bool {
	for _, r := range n.Ranges {
		if r.Contains(ip) {
			return true
		}
	}
	return false
}

// IpRange is an inclusive address range. First and Last are kept as the
// text received on the wire; nothing enforces First <= Last.
type IpRange struct {
	First string
	Last  string
}

// Label renders the human-readable "<net> - (first-last)" form.
func (r IpRange) Label(netName string) string {
	return netName + " - (" + r.First + "-" + r.Last + ")"
}

// Range parses the endpoints into a netaddr.IPRange.
func (r IpRange) Range() (netaddr.IPRange, error) {
	first, ok := netaddr.FromStdIP(net.ParseIP(r.First))
	if !ok {
		return netaddr.IPRange{}, errors.Errorf("failed to parse ip %q", r.First)
	}
	last, ok := netaddr.FromStdIP(net.ParseIP(r.Last))
	if !ok {
		return netaddr.IPRange{}, errors.Errorf("failed to parse ip %q", r.Last)
	}
	return netaddr.IPRangeFrom(first, last), nil
}

// Contains reports whether ip falls inside the range. Unparseable or
// inverted ranges contain nothing.
func (r IpRange) Contains(ip netaddr.IP) bool {
	ipr, err := r.Range()
	if err != nil {
		return false
	}
	return ipr.Contains(ip)
}

// ParseURN extracts the trailing UUID from a vCloud urn style resource id,
// e.g. "urn:vcloud:org:bffc4f07-...".
func ParseURN(id string) (uuid.UUID, error) {
	i := strings.LastIndex(id, ":")
	if i < 0 {
		return uuid.UUID{}, errors.Errorf("not a urn: %q", id)
	}
	u, err := uuid.Parse(id[i+1:])
	return u, errors.Wrap(err, "not a valid uuid for id")
}
