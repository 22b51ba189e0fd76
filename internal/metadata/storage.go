// Package metadata stores the z/VM directory entry a libvirt domain was
// built from in the domain's custom XML metadata, so the entry persists with
// the domain itself.
package metadata

import (
	"encoding/xml"
	"fmt"

	"github.com/digitalocean/go-libvirt"
	"gopkg.in/yaml.v3"

	"github.com/jbweber/zdir/internal/directory"
)

const (
	// Namespace is the XML namespace of zdir metadata.
	Namespace = "https://github.com/jbweber/zdir/directory/v1"

	// Key is the element prefix used to store and retrieve the metadata.
	Key = "zdir-directory-entry"
)

// Client is the subset of *libvirt.Libvirt used by this package.
type Client interface {
	DomainSetMetadata(dom libvirt.Domain, typ int32, metadata libvirt.OptString, key libvirt.OptString, uri libvirt.OptString, flags libvirt.DomainModificationImpact) error
	DomainGetMetadata(dom libvirt.Domain, typ int32, uri libvirt.OptString, flags libvirt.DomainModificationImpact) (string, error)
}

// Record is the YAML document kept in the metadata element.
type Record struct {
	UserID     string   `yaml:"userid"`
	Statements []string `yaml:"statements"`
}

// element is the XML wrapper around the YAML record. The YAML is kept as
// text so it stays readable in `virsh dumpxml`.
type element struct {
	XMLName xml.Name `xml:"entry"`
	Xmlns   string   `xml:"xmlns,attr"`
	YAML    string   `xml:",chardata"`
}

// Store saves entry in the domain metadata, replacing any earlier value.
func Store(c Client, dom libvirt.Domain, entry *directory.Entry) error {
	data, err := yaml.Marshal(Record{UserID: entry.UserID, Statements: entry.Lines})
	if err != nil {
		return fmt.Errorf("failed to marshal directory entry to YAML: %w", err)
	}

	xmlData, err := xml.Marshal(element{Xmlns: Namespace, YAML: string(data)})
	if err != nil {
		return fmt.Errorf("failed to marshal metadata to XML: %w", err)
	}

	err = c.DomainSetMetadata(
		dom,
		int32(libvirt.DomainMetadataElement),
		libvirt.OptString{string(xmlData)},
		libvirt.OptString{Key},
		libvirt.OptString{Namespace},
		libvirt.DomainAffectConfig,
	)
	if err != nil {
		return fmt.Errorf("failed to set libvirt domain metadata: %w", err)
	}
	return nil
}

// Load returns the directory entry stored on dom.
func Load(c Client, dom libvirt.Domain) (*directory.Entry, error) {
	raw, err := c.DomainGetMetadata(
		dom,
		int32(libvirt.DomainMetadataElement),
		libvirt.OptString{Namespace},
		libvirt.DomainAffectConfig,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get libvirt domain metadata: %w", err)
	}

	var el element
	if err := xml.Unmarshal([]byte(raw), &el); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata XML: %w", err)
	}

	var rec Record
	if err := yaml.Unmarshal([]byte(el.YAML), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal directory entry from YAML: %w", err)
	}
	return &directory.Entry{UserID: rec.UserID, Lines: rec.Statements}, nil
}
