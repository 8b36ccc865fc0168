package vcloud

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const orgListDoc = `<?xml version="1.0" encoding="UTF-8"?>
<OrgList xmlns="http://www.vmware.com/vcloud/v1.5" type="application/vnd.vmware.vcloud.orgList+xml" href="https://vcd.example.com/api/org">
  <Org type="application/vnd.vmware.vcloud.org+xml" href="https://vcd.example.com/api/org/1" name="Acme"/>
  <Org type="application/vnd.vmware.vcloud.org+xml" href="https://vcd.example.com/api/org/2" name="Globex"/>
  <Org type="application/vnd.vmware.vcloud.org+xml" href="https://vcd.example.com/api/org/3" name="Acme"/>
</OrgList>`

const orgDoc = `<?xml version="1.0" encoding="UTF-8"?>
<Org xmlns="http://www.vmware.com/vcloud/v1.5" type="application/vnd.vmware.vcloud.org+xml" href="https://vcd.example.com/api/org/1" name="Acme" id="urn:vcloud:org:bffc4f07-09f6-45a7-954b-f4e6d5e8d6e0">
  <Link rel="down" type="application/vnd.vmware.vcloud.vdc+xml" href="https://vcd.example.com/api/vdc/1" name="vdc-east"/>
  <Link rel="down" type="application/vnd.vmware.vcloud.vdc+xml" href="https://vcd.example.com/api/vdc/2" name="vdc-west"/>
  <Link rel="down" type="application/vnd.vmware.vcloud.orgNetwork+xml" href="https://vcd.example.com/api/network/10" name="internal"/>
  <Description>Acme Corp tenant</Description>
  <FullName>Acme Corporation</FullName>
</Org>`

const vdcDoc = `<?xml version="1.0" encoding="UTF-8"?>
<Vdc xmlns="http://www.vmware.com/vcloud/v1.5" type="application/vnd.vmware.vcloud.vdc+xml" href="https://vcd.example.com/api/vdc/1" name="vdc-east" id="urn:vcloud:vdc:0d4524ba-8c2a-4d3a-9b4c-31b2f8c867a1">
  <Link rel="up" type="application/vnd.vmware.vcloud.org+xml" href="https://vcd.example.com/api/org/1"/>
  <StorageCapacity>
    <Units>MB</Units>
    <Allocated>100</Allocated>
    <Used>50</Used>
  </StorageCapacity>
  <ComputeCapacity>
    <Cpu>
      <Units>MHz</Units>
      <Allocated>2000</Allocated>
    </Cpu>
    <Memory>
      <Units>MB</Units>
      <Allocated>4096</Allocated>
    </Memory>
  </ComputeCapacity>
  <ResourceEntities>
    <ResourceEntity type="application/vnd.vmware.vcloud.vApp+xml" href="https://vcd.example.com/api/vApp/1" name="web"/>
    <ResourceEntity type="application/vnd.vmware.vcloud.media+xml" href="https://vcd.example.com/api/media/1" name="install-iso"/>
    <ResourceEntity type="application/vnd.vmware.vcloud.vApp+xml" href="https://vcd.example.com/api/vApp/2" name="db"/>
  </ResourceEntities>
</Vdc>`

const orgNetDoc = `<?xml version="1.0" encoding="UTF-8"?>
<OrgNetwork xmlns="http://www.vmware.com/vcloud/v1.5" type="application/vnd.vmware.vcloud.orgNetwork+xml" href="https://vcd.example.com/api/network/10" name="internal">
  <Configuration>
    <IpScope>
      <Gateway>10.0.0.1</Gateway>
      <Netmask>255.255.255.0</Netmask>
      <DnsSuffix>example.com</DnsSuffix>
      <IpRanges>
        <IpRange>
          <StartAddress>10.0.0.10</StartAddress>
          <EndAddress>10.0.0.20</EndAddress>
        </IpRange>
        <IpRange>
          <StartAddress>10.0.0.100</StartAddress>
          <EndAddress>10.0.0.110</EndAddress>
        </IpRange>
      </IpRanges>
    </IpScope>
  </Configuration>
</OrgNetwork>`

const extNetDoc = `<?xml version="1.0" encoding="UTF-8"?>
<ExternalNetwork xmlns="http://www.vmware.com/vcloud/v1.5" type="application/vnd.vmware.admin.network+xml" href="https://vcd.example.com/api/admin/network/1" name="public" id="urn:vcloud:network:0aa2a704-da5a-4b8e-a438-3fb7d67b6c3a">
  <Link rel="up" type="application/vnd.vmware.admin.vcloud+xml" href="https://vcd.example.com/api/admin"/>
  <Description>Provider uplink</Description>
  <Configuration>
    <IpScope>
      <Gateway>192.0.2.1</Gateway>
      <Netmask>255.255.255.0</Netmask>
    </IpScope>
    <FenceMode>isolated</FenceMode>
  </Configuration>
</ExternalNetwork>`

const extNetListDoc = `<?xml version="1.0" encoding="UTF-8"?>
<VCloud xmlns="http://www.vmware.com/vcloud/v1.5" type="application/vnd.vmware.admin.vcloud+xml" href="https://vcd.example.com/api/admin" name="system">
  <Networks>
    <Network type="application/vnd.vmware.admin.network+xml" href="https://vcd.example.com/api/admin/network/1" name="public"/>
    <Network type="application/vnd.vmware.admin.network+xml" href="https://vcd.example.com/api/admin/network/2" name="dmz"/>
  </Networks>
</VCloud>`

func TestDecodeSession(t *testing.T) {
	assert := require.New(t)

	doc := `<?xml version="1.0" encoding="UTF-8"?>
<Session xmlns="http://www.vmware.com/vcloud/v1.5" type="application/vnd.vmware.vcloud.session+xml" href="https://vcd.example.com/api/session">
  <Link rel="down" type="application/vnd.vmware.vcloud.orgList+xml" href="https://vcd.example.com/api/org"/>
  <Link rel="down" type="application/vnd.vmware.admin.vcloud+xml" href="https://vcd.example.com/api/admin"/>
  <Link rel="down" type="application/vnd.vmware.vcloud.orgList+xml" href="https://vcd.example.com/api/org-alt"/>
</Session>`

	links, err := decodeSession([]byte(doc))
	assert.NoError(err)
	assert.Len(links, 2)

	// grouping is stable, first link of a type keeps document order
	orgList := links["application/vnd.vmware.vcloud.orgList+xml"]
	assert.Len(orgList, 2)
	assert.Equal("https://vcd.example.com/api/org", orgList[0].HREF)
	assert.Equal("https://vcd.example.com/api/org-alt", orgList[1].HREF)

	first, ok := links.First("application/vnd.vmware.vcloud.orgList+xml")
	assert.True(ok)
	assert.Equal("https://vcd.example.com/api/org", first.HREF)
}

func TestDecodeSessionErrors(t *testing.T) {
	assert := require.New(t)

	for _, doc := range []string{
		`<Session><Link rel="down" href="https://vcd/api/org"/></Session>`,
		`<Session><Link rel="down" type="application/vnd.vmware.vcloud.orgList+xml"/></Session>`,
		`<Session><Link type="application/vnd.vmware.vcloud.orgList+xml" href="https://vcd/api/org"/></Session>`,
	} {
		links, err := decodeSession([]byte(doc))
		assert.Error(err, doc)
		assert.Nil(links)

		var derr *DecodeError
		assert.True(errors.As(err, &derr), doc)
	}
}

func TestDecodeOrgList(t *testing.T) {
	assert := require.New(t)

	list, err := decodeOrgList([]byte(orgListDoc))
	assert.NoError(err)
	assert.Len(list.Orgs, 3)
	assert.Equal("Acme", list.Orgs[0].Name)
	assert.Equal("Globex", list.Orgs[1].Name)
	assert.Equal("https://vcd.example.com/api/org/1", list.Orgs[0].HREF)

	// the record found by name is structurally the one that was decoded
	got := list.OrgByName("Acme")
	assert.NotNil(got)
	assert.Equal(list.Orgs[0], *got)
}

func TestDecodeOrg(t *testing.T) {
	assert := require.New(t)

	org, err := decodeOrg([]byte(orgDoc))
	assert.NoError(err)
	assert.Equal("application/vnd.vmware.vcloud.org+xml", org.Type)
	assert.Equal("https://vcd.example.com/api/org/1", org.HREF)
	assert.Equal("Acme", org.Name)
	assert.Equal("urn:vcloud:org:bffc4f07-09f6-45a7-954b-f4e6d5e8d6e0", org.ID)
	assert.Equal("Acme Corporation", org.FullName)
	assert.Equal("Acme Corp tenant", org.Description)

	u, err := ParseURN(org.ID)
	assert.NoError(err)
	assert.Equal("bffc4f07-09f6-45a7-954b-f4e6d5e8d6e0", u.String())

	vdcs := org.Links["application/vnd.vmware.vcloud.vdc+xml"]
	assert.Len(vdcs, 2)
	assert.Equal("vdc-east", vdcs[0].Name)
	assert.Equal("vdc-west", vdcs[1].Name)
	assert.Len(org.Links["application/vnd.vmware.vcloud.orgNetwork+xml"], 1)
}

func TestDecodeOrgOptionalFields(t *testing.T) {
	assert := require.New(t)

	org, err := decodeOrg([]byte(`<Org type="application/vnd.vmware.vcloud.org+xml" href="https://vcd/api/org/1" name="Acme"/>`))
	assert.NoError(err)
	assert.Empty(org.ID)
	assert.Empty(org.FullName)
	assert.Empty(org.Description)
	assert.Empty(org.Links)
}

func TestDecodeOrgErrors(t *testing.T) {
	assert := require.New(t)

	for _, test := range []struct {
		doc   string
		field string
	}{
		{doc: `<Org href="https://vcd/api/org/1" name="Acme"/>`, field: "type"},
		{doc: `<Org type="application/vnd.vmware.vcloud.org+xml" name="Acme"/>`, field: "href"},
		{doc: `<Org type="application/vnd.vmware.vcloud.org+xml" href="https://vcd/api/org/1"/>`, field: "name"},
	} {
		org, err := decodeOrg([]byte(test.doc))
		assert.Error(err)
		assert.Nil(org)

		var derr *DecodeError
		assert.True(errors.As(err, &derr))
		assert.Equal("Org", derr.Resource)
		assert.Equal(test.field, derr.Field)
	}
}

func TestDecodeOrgListErrors(t *testing.T) {
	assert := require.New(t)

	list, err := decodeOrgList([]byte(`<OrgList>
  <Org type="application/vnd.vmware.vcloud.org+xml" href="https://vcd/api/org/1" name="Acme"/>
  <Org type="application/vnd.vmware.vcloud.org+xml" href="https://vcd/api/org/2"/>
</OrgList>`))
	assert.Error(err)
	assert.Nil(list)
}

func TestDecodeOrgVdc(t *testing.T) {
	assert := require.New(t)

	vdc, err := decodeOrgVdc([]byte(vdcDoc))
	assert.NoError(err)
	assert.Equal("vdc-east", vdc.Name)
	assert.Equal("urn:vcloud:vdc:0d4524ba-8c2a-4d3a-9b4c-31b2f8c867a1", vdc.ID)

	// capacity bags are untyped text keyed by local element name
	assert.Equal(map[string]string{"Units": "MB", "Allocated": "100", "Used": "50"}, vdc.Storage)
	assert.Equal(map[string]string{"Units": "MHz", "Allocated": "2000"}, vdc.Compute.CPU)
	assert.Equal(map[string]string{"Units": "MB", "Allocated": "4096"}, vdc.Compute.Memory)

	vapps := vdc.Entities["application/vnd.vmware.vcloud.vApp+xml"]
	assert.Len(vapps, 2)
	assert.Equal("web", vapps[0].Name)
	assert.Equal("db", vapps[1].Name)
	assert.Len(vdc.Entities["application/vnd.vmware.vcloud.media+xml"], 1)

	assert.Len(vdc.Links["application/vnd.vmware.vcloud.org+xml"], 1)
}

func TestDecodeOrgVdcOptionalCapacity(t *testing.T) {
	assert := require.New(t)

	vdc, err := decodeOrgVdc([]byte(`<Vdc type="application/vnd.vmware.vcloud.vdc+xml" href="https://vcd/api/vdc/1" name="vdc-east"/>`))
	assert.NoError(err)
	assert.Empty(vdc.ID)
	assert.Empty(vdc.Storage)
	assert.Empty(vdc.Compute.CPU)
	assert.Empty(vdc.Compute.Memory)
	assert.Empty(vdc.Entities)
}

func TestDecodeOrgVdcErrors(t *testing.T) {
	assert := require.New(t)

	for _, doc := range []string{
		`<Vdc href="https://vcd/api/vdc/1" name="vdc-east"/>`,
		`<Vdc type="application/vnd.vmware.vcloud.vdc+xml" name="vdc-east"/>`,
		`<Vdc type="application/vnd.vmware.vcloud.vdc+xml" href="https://vcd/api/vdc/1"/>`,
		`<Vdc type="application/vnd.vmware.vcloud.vdc+xml" href="https://vcd/api/vdc/1" name="vdc-east">
  <ResourceEntities><ResourceEntity name="web"/></ResourceEntities>
</Vdc>`,
	} {
		vdc, err := decodeOrgVdc([]byte(doc))
		assert.Error(err, doc)
		assert.Nil(vdc)

		var derr *DecodeError
		assert.True(errors.As(err, &derr), doc)
	}
}

func TestDecodeOrgNet(t *testing.T) {
	assert := require.New(t)

	n, err := decodeOrgNet([]byte(orgNetDoc))
	assert.NoError(err)
	assert.Equal("internal", n.Name)
	assert.Equal("10.0.0.1", n.Gateway)
	assert.Equal("255.255.255.0", n.Netmask)
	assert.Equal("example.com", n.DNS)
	assert.Equal([]IpRange{
		{First: "10.0.0.10", Last: "10.0.0.20"},
		{First: "10.0.0.100", Last: "10.0.0.110"},
	}, n.Ranges)
}

func TestDecodeOrgNetErrors(t *testing.T) {
	assert := require.New(t)

	for _, test := range []struct {
		doc   string
		field string
	}{
		{doc: `<OrgNetwork><Configuration><IpScope><Gateway>10.0.0.1</Gateway><Netmask>255.255.255.0</Netmask><DnsSuffix>example.com</DnsSuffix></IpScope></Configuration></OrgNetwork>`, field: "name"},
		{doc: `<OrgNetwork name="internal"/>`, field: "Configuration"},
		{doc: `<OrgNetwork name="internal"><Configuration/></OrgNetwork>`, field: "IpScope"},
		{doc: `<OrgNetwork name="internal"><Configuration><IpScope><Netmask>255.255.255.0</Netmask><DnsSuffix>example.com</DnsSuffix></IpScope></Configuration></OrgNetwork>`, field: "Gateway"},
		{doc: `<OrgNetwork name="internal"><Configuration><IpScope><Gateway>10.0.0.1</Gateway><DnsSuffix>example.com</DnsSuffix></IpScope></Configuration></OrgNetwork>`, field: "Netmask"},
		{doc: `<OrgNetwork name="internal"><Configuration><IpScope><Gateway>10.0.0.1</Gateway><Netmask>255.255.255.0</Netmask></IpScope></Configuration></OrgNetwork>`, field: "DnsSuffix"},
	} {
		n, err := decodeOrgNet([]byte(test.doc))
		assert.Error(err)
		assert.Nil(n)

		var derr *DecodeError
		assert.True(errors.As(err, &derr))
		assert.Equal(test.field, derr.Field)
	}
}

func TestDecodeExtNet(t *testing.T) {
	assert := require.New(t)

	en, err := decodeExtNet([]byte(extNetDoc))
	assert.NoError(err)
	assert.Equal("public", en.Name)
	assert.Equal("urn:vcloud:network:0aa2a704-da5a-4b8e-a438-3fb7d67b6c3a", en.ID)
	assert.Equal("Provider uplink", en.Description)
	assert.Len(en.Links["application/vnd.vmware.admin.vcloud+xml"], 1)

	// the configuration fragment is carried raw, not modeled
	assert.Contains(string(en.Config), "<Gateway>192.0.2.1</Gateway>")
	assert.Contains(string(en.Config), "<FenceMode>isolated</FenceMode>")
}

func TestDecodeExtNetErrors(t *testing.T) {
	assert := require.New(t)

	for _, doc := range []string{
		`<ExternalNetwork href="https://vcd/api/admin/network/1" name="public"/>`,
		`<ExternalNetwork type="application/vnd.vmware.admin.network+xml" name="public"/>`,
		`<ExternalNetwork type="application/vnd.vmware.admin.network+xml" href="https://vcd/api/admin/network/1"/>`,
	} {
		en, err := decodeExtNet([]byte(doc))
		assert.Error(err, doc)
		assert.Nil(en)

		var derr *DecodeError
		assert.True(errors.As(err, &derr), doc)
		assert.Equal("ExternalNetwork", derr.Resource)
	}
}

func TestDecodeExtNetList(t *testing.T) {
	assert := require.New(t)

	list, err := decodeExtNetList([]byte(extNetListDoc))
	assert.NoError(err)
	assert.Len(list.ExtNets, 2)
	assert.Equal("public", list.ExtNets[0].Name)
	assert.Equal("dmz", list.ExtNets[1].Name)

	got := list.ExtNetByName("dmz")
	assert.NotNil(got)
	assert.Equal(list.ExtNets[1], *got)
}

func TestDecodeGarbage(t *testing.T) {
	assert := require.New(t)

	for _, decode := range []func([]byte) error{
		func(b []byte) error { _, err := decodeOrg(b); return err },
		func(b []byte) error { _, err := decodeOrgList(b); return err },
		func(b []byte) error { _, err := decodeOrgVdc(b); return err },
		func(b []byte) error { _, err := decodeOrgNet(b); return err },
		func(b []byte) error { _, err := decodeExtNet(b); return err },
		func(b []byte) error { _, err := decodeExtNetList(b); return err },
		func(b []byte) error { _, err := decodeSession(b); return err },
	} {
		assert.Error(decode([]byte(`{"not": "xml"}`)))
	}
}
