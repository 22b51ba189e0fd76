package libvirt

import (
	"errors"
	"sync"

	"github.com/digitalocean/go-libvirt"
)

// mockDomainClient is a mock implementation of the domainClient interface for testing.
type mockDomainClient struct {
	mu sync.Mutex

	lookupFunc      func(name string) (libvirt.Domain, error)
	defineFunc      func(xml string) (libvirt.Domain, error)
	undefineFunc    func(dom libvirt.Domain) error
	setMetadataFunc func(metadata string) error
	getMetadataFunc func() (string, error)

	lookupCalls      []string
	defineCalls      []string
	undefineCalls    []libvirt.Domain
	setMetadataCalls []string
}

func newMockDomainClient() *mockDomainClient {
	return &mockDomainClient{
		// Default: domain doesn't exist
		lookupFunc: func(name string) (libvirt.Domain, error) {
			return libvirt.Domain{}, errors.New("domain not found")
		},
		defineFunc: func(xml string) (libvirt.Domain, error) {
			return libvirt.Domain{Name: "defined"}, nil
		},
		undefineFunc:    func(dom libvirt.Domain) error { return nil },
		setMetadataFunc: func(string) error { return nil },
		getMetadataFunc: func() (string, error) { return "", errors.New("no metadata") },
	}
}

func (m *mockDomainClient) DomainLookupByName(name string) (libvirt.Domain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookupCalls = append(m.lookupCalls, name)
	return m.lookupFunc(name)
}

func (m *mockDomainClient) DomainDefineXML(xml string) (libvirt.Domain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defineCalls = append(m.defineCalls, xml)
	return m.defineFunc(xml)
}

func (m *mockDomainClient) DomainUndefine(dom libvirt.Domain) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undefineCalls = append(m.undefineCalls, dom)
	return m.undefineFunc(dom)
}

func (m *mockDomainClient) DomainSetMetadata(dom libvirt.Domain, typ int32, metadata libvirt.OptString, key libvirt.OptString, uri libvirt.OptString, flags libvirt.DomainModificationImpact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var v string
	if len(metadata) > 0 {
		v = metadata[0]
	}
	m.setMetadataCalls = append(m.setMetadataCalls, v)
	return m.setMetadataFunc(v)
}

func (m *mockDomainClient) DomainGetMetadata(dom libvirt.Domain, typ int32, uri libvirt.OptString, flags libvirt.DomainModificationImpact) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getMetadataFunc()
}
