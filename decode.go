package vcloud

import (
	"encoding/xml"

	"github.com/pkg/errors"
)

// Wire shapes. Elements are matched by local name only: the vCloud
// namespace URI embeds the API version, so binding to it would break from
// one deployment to the next.

type linkXML struct {
	Type string `xml:"type,attr"`
	HREF string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Name string `xml:"name,attr"`
}

type resourceEntityXML struct {
	Type string `xml:"type,attr"`
	HREF string `xml:"href,attr"`
	Name string `xml:"name,attr"`
}

type sessionXML struct {
	Links []linkXML `xml:"Link"`
}

type orgXML struct {
	Type        string    `xml:"type,attr"`
	HREF        string    `xml:"href,attr"`
	Name        string    `xml:"name,attr"`
	ID          string    `xml:"id,attr"`
	FullName    string    `xml:"FullName"`
	Description string    `xml:"Description"`
	Links       []linkXML `xml:"Link"`
}

type orgListXML struct {
	Orgs []orgXML `xml:"Org"`
}

// capacityXML collects arbitrary key/value children: the wire schema for
// capacity bags varies by deployment, so every child element becomes a
// map entry keyed by its local name with its text left as-is.
type capacityXML struct {
	Values []capacityValueXML `xml:",any"`
}

type capacityValueXML struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

func (c *capacityXML) bag() map[string]string {
	m := map[string]string{}
	if c == nil {
		return m
	}
	for _, v := range c.Values {
		m[v.XMLName.Local] = v.Value
	}
	return m
}

type computeCapacityXML struct {
	CPU    *capacityXML `xml:"Cpu"`
	Memory *capacityXML `xml:"Memory"`
}

type vdcXML struct {
	Type     string              `xml:"type,attr"`
	HREF     string              `xml:"href,attr"`
	Name     string              `xml:"name,attr"`
	ID       string              `xml:"id,attr"`
	Storage  *capacityXML        `xml:"StorageCapacity"`
	Compute  *computeCapacityXML `xml:"ComputeCapacity"`
	Links    []linkXML           `xml:"Link"`
	Entities []resourceEntityXML `xml:"ResourceEntities>ResourceEntity"`
}

type rawXML struct {
	Inner []byte `xml:",innerxml"`
}

type extNetXML struct {
	Type        string    `xml:"type,attr"`
	HREF        string    `xml:"href,attr"`
	Name        string    `xml:"name,attr"`
	ID          string    `xml:"id,attr"`
	Description string    `xml:"Description"`
	Config      *rawXML   `xml:"Configuration"`
	Links       []linkXML `xml:"Link"`
}

type extNetListXML struct {
	Networks []extNetXML `xml:"Networks>Network"`
}

type ipRangeXML struct {
	Start string `xml:"StartAddress"`
	End   string `xml:"EndAddress"`
}

type ipScopeXML struct {
	Gateway string       `xml:"Gateway"`
	Netmask string       `xml:"Netmask"`
	DNS     string       `xml:"DnsSuffix"`
	Ranges  []ipRangeXML `xml:"IpRanges>IpRange"`
}

type orgNetXML struct {
	Name   string `xml:"name,attr"`
	Config *struct {
		IPScope *ipScopeXML `xml:"IpScope"`
	} `xml:"Configuration"`
}

// groupLinks builds a LinkIndex from same-typed siblings, preserving
// document order within each type.
func groupLinks(ls []linkXML) (LinkIndex, error) {
	idx := LinkIndex{}
	for _, l := range ls {
		switch {
		case l.Type == "":
			return nil, &DecodeError{Resource: "Link", Field: "type"}
		case l.HREF == "":
			return nil, &DecodeError{Resource: "Link", Field: "href"}
		case l.Rel == "":
			return nil, &DecodeError{Resource: "Link", Field: "rel"}
		}
		idx[l.Type] = append(idx[l.Type], Link{Type: l.Type, HREF: l.HREF, Rel: l.Rel, Name: l.Name})
	}
	return idx, nil
}

func groupEntities(es []resourceEntityXML) (EntityIndex, error) {
	idx := EntityIndex{}
	for _, e := range es {
		switch {
		case e.Type == "":
			return nil, &DecodeError{Resource: "ResourceEntity", Field: "type"}
		case e.HREF == "":
			return nil, &DecodeError{Resource: "ResourceEntity", Field: "href"}
		}
		idx[e.Type] = append(idx[e.Type], ResourceEntity{Type: e.Type, HREF: e.HREF, Name: e.Name})
	}
	return idx, nil
}

func decodeSession(b []byte) (LinkIndex, error) {
	var x sessionXML
	if err := xml.Unmarshal(b, &x); err != nil {
		return nil, errors.Wrap(err, "unmarshal session")
	}
	return groupLinks(x.Links)
}

func (x orgXML) record() (*Org, error) {
	switch {
	case x.Type == "":
		return nil, &DecodeError{Resource: "Org", Field: "type"}
	case x.HREF == "":
		return nil, &DecodeError{Resource: "Org", Field: "href"}
	case x.Name == "":
		return nil, &DecodeError{Resource: "Org", Field: "name"}
	}
	links, err := groupLinks(x.Links)
	if err != nil {
		return nil, err
	}
	return &Org{
		Type:        x.Type,
		HREF:        x.HREF,
		Name:        x.Name,
		ID:          x.ID,
		FullName:    x.FullName,
		Description: x.Description,
		Links:       links,
	}, nil
}

func decodeOrg(b []byte) (*Org, error) {
	var x orgXML
	if err := xml.Unmarshal(b, &x); err != nil {
		return nil, errors.Wrap(err, "unmarshal org")
	}
	return x.record()
}

func decodeOrgList(b []byte) (*OrgList, error) {
	var x orgListXML
	if err := xml.Unmarshal(b, &x); err != nil {
		return nil, errors.Wrap(err, "unmarshal org list")
	}
	orgs := make([]Org, 0, len(x.Orgs))
	for _, o := range x.Orgs {
		org, err := o.record()
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, *org)
	}
	return &OrgList{Orgs: orgs}, nil
}

func decodeOrgVdc(b []byte) (*OrgVdc, error) {
	var x vdcXML
	if err := xml.Unmarshal(b, &x); err != nil {
		return nil, errors.Wrap(err, "unmarshal vdc")
	}
	switch {
	case x.Type == "":
		return nil, &DecodeError{Resource: "Vdc", Field: "type"}
	case x.HREF == "":
		return nil, &DecodeError{Resource: "Vdc", Field: "href"}
	case x.Name == "":
		return nil, &DecodeError{Resource: "Vdc", Field: "name"}
	}
	links, err := groupLinks(x.Links)
	if err != nil {
		return nil, err
	}
	entities, err := groupEntities(x.Entities)
	if err != nil {
		return nil, err
	}
	compute := ComputeCapacity{CPU: map[string]string{}, Memory: map[string]string{}}
	if x.Compute != nil {
		compute.CPU = x.Compute.CPU.bag()
		compute.Memory = x.Compute.Memory.bag()
	}
	return &OrgVdc{
		Type:     x.Type,
		HREF:     x.HREF,
		Name:     x.Name,
		ID:       x.ID,
		Storage:  x.Storage.bag(),
		Compute:  compute,
		Links:    links,
		Entities: entities,
	}, nil
}

func (x extNetXML) record() (*ExtNet, error) {
	switch {
	case x.Type == "":
		return nil, &DecodeError{Resource: "ExternalNetwork", Field: "type"}
	case x.HREF == "":
		return nil, &DecodeError{Resource: "ExternalNetwork", Field: "href"}
	case x.Name == "":
		return nil, &DecodeError{Resource: "ExternalNetwork", Field: "name"}
	}
	links, err := groupLinks(x.Links)
	if err != nil {
		return nil, err
	}
	en := &ExtNet{
		Type:        x.Type,
		HREF:        x.HREF,
		Name:        x.Name,
		ID:          x.ID,
		Description: x.Description,
		Links:       links,
	}
	if x.Config != nil {
		en.Config = x.Config.Inner
	}
	return en, nil
}

func decodeExtNet(b []byte) (*ExtNet, error) {
	var x extNetXML
	if err := xml.Unmarshal(b, &x); err != nil {
		return nil, errors.Wrap(err, "unmarshal external network")
	}
	return x.record()
}

func decodeExtNetList(b []byte) (*ExtNetList, error) {
	var x extNetListXML
	if err := xml.Unmarshal(b, &x); err != nil {
		return nil, errors.Wrap(err, "unmarshal external network list")
	}
	nets := make([]ExtNet, 0, len(x.Networks))
	for _, n := range x.Networks {
		en, err := n.record()
		if err != nil {
			return nil, err
		}
		nets = append(nets, *en)
	}
	return &ExtNetList{ExtNets: nets}, nil
}

func decodeOrgNet(b []byte) (*OrgNet, error) {
	var x orgNetXML
	if err := xml.Unmarshal(b, &x); err != nil {
		return nil, errors.Wrap(err, "unmarshal org network")
	}
	if x.Name == "" {
		return nil, &DecodeError{Resource: "OrgNetwork", Field: "name"}
	}
	if x.Config == nil {
		return nil, &DecodeError{Resource: "OrgNetwork", Field: "Configuration"}
	}
	scope := x.Config.IPScope
	if scope == nil {
		return nil, &DecodeError{Resource: "OrgNetwork", Field: "IpScope"}
	}
	switch {
	case scope.Gateway == "":
		return nil, &DecodeError{Resource: "OrgNetwork", Field: "Gateway"}
	case scope.Netmask == "":
		return nil, &DecodeError{Resource: "OrgNetwork", Field: "Netmask"}
	case scope.DNS == "":
		return nil, &DecodeError{Resource: "OrgNetwork", Field: "DnsSuffix"}
	}
	ranges := make([]IpRange, 0, len(scope.Ranges))
	for _, r := range scope.Ranges {
		ranges = append(ranges, IpRange{First: r.Start, Last: r.End})
	}
	return &OrgNet{
		Name:    x.Name,
		Gateway: scope.Gateway,
		Netmask: scope.Netmask,
		DNS:     scope.DNS,
		Ranges:  ranges,
	}, nil
}
