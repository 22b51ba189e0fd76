package libvirt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/digitalocean/go-libvirt"

	"github.com/jbweber/zdir/internal/ctxlog"
	"github.com/jbweber/zdir/internal/directory"
	"github.com/jbweber/zdir/internal/metadata"
	"github.com/jbweber/zdir/internal/naming"
)

// ErrDomainExists is returned when a domain for the userid is already defined.
var ErrDomainExists = errors.New("domain already exists")

// ConnectionError reports a failure to reach the libvirt daemon.
type ConnectionError struct {
	Socket string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("libvirt connection to %s failed: %v", e.Socket, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// domainClient is the part of *libvirt.Libvirt the submitter needs.
//
// In production, this is satisfied by *libvirt.Libvirt directly.
// In tests, this is satisfied by mock implementations.
type domainClient interface {
	metadata.Client

	DomainLookupByName(name string) (libvirt.Domain, error)
	DomainDefineXML(xml string) (libvirt.Domain, error)
	DomainUndefine(dom libvirt.Domain) error
}

// connectFunc opens a connection and returns the client and its closer.
type connectFunc func(ctx context.Context) (domainClient, func() error, error)

// Submitter defines directory entries as libvirt domains. It connects on
// every Submit, so requests that never submit never touch libvirt.
type Submitter struct {
	socket  string
	connect connectFunc
}

// NewSubmitter returns a Submitter for the libvirt daemon at socket.
// Empty socket and zero timeout select the Connect defaults.
func NewSubmitter(socket string, timeout time.Duration) *Submitter {
	return &Submitter{
		socket: socket,
		connect: func(ctx context.Context) (domainClient, func() error, error) {
			c, err := ConnectWithContext(ctx, socket, timeout)
			if err != nil {
				return nil, nil, err
			}
			return c.Libvirt(), c.Close, nil
		},
	}
}

// Submit defines the domain for entry and stores entry in its metadata.
func (s *Submitter) Submit(ctx context.Context, entry *directory.Entry) error {
	lv, closeFn, err := s.connect(ctx)
	if err != nil {
		return &ConnectionError{Socket: s.socket, Err: err}
	}
	defer func() {
		if err := closeFn(); err != nil {
			ctxlog.FromContext(ctx).Warn("failed to close libvirt connection", "error", err)
		}
	}()

	return submitWithDeps(ctx, lv, entry)
}

// submitWithDeps defines the domain with an injected client. A domain that
// was defined but could not be given its metadata is undefined again.
func submitWithDeps(ctx context.Context, lv domainClient, entry *directory.Entry) error {
	logger := ctxlog.FromContext(ctx)
	name := naming.DomainName(entry.UserID)

	// DomainLookupByName returns an error when the domain does not exist.
	if _, err := lv.DomainLookupByName(name); err == nil {
		return fmt.Errorf("%s: %w", name, ErrDomainExists)
	}

	xml, err := GenerateDomainXML(entry)
	if err != nil {
		return fmt.Errorf("failed to generate domain XML: %w", err)
	}

	logger.Info("defining libvirt domain", "domain", name)
	dom, err := lv.DomainDefineXML(xml)
	if err != nil {
		return fmt.Errorf("failed to define domain %s: %w", name, err)
	}

	if err := metadata.Store(lv, dom, entry); err != nil {
		if uerr := lv.DomainUndefine(dom); uerr != nil {
			logger.Warn("failed to undefine domain after metadata error", "domain", name, "error", uerr)
		}
		return err
	}

	logger.Info("libvirt domain defined", "domain", name)
	return nil
}

// Lookup returns the directory entry stored on the domain for userID.
func (s *Submitter) Lookup(ctx context.Context, userID string) (*directory.Entry, error) {
	lv, closeFn, err := s.connect(ctx)
	if err != nil {
		return nil, &ConnectionError{Socket: s.socket, Err: err}
	}
	defer func() {
		if err := closeFn(); err != nil {
			ctxlog.FromContext(ctx).Warn("failed to close libvirt connection", "error", err)
		}
	}()

	name := naming.DomainName(userID)
	dom, err := lv.DomainLookupByName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up domain %s: %w", name, err)
	}
	return metadata.Load(lv, dom)
}
