package libvirt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"libvirt.org/go/libvirtxml"

	"github.com/jbweber/zdir/internal/directory"
	"github.com/jbweber/zdir/internal/naming"
)

const (
	// Arch and Machine describe the s390x KVM guest a directory entry maps to.
	Arch    = "s390x"
	Machine = "s390-ccw-virtio"
)

// uuidNamespace derives stable domain UUIDs from z/VM userids.
var uuidNamespace = uuid.MustParse("6f1d7c6e-2b64-4f0a-9c1e-7d1a3e5b9f20")

// guest is what the domain definition needs from a directory entry.
type guest struct {
	primaryMB int
	maxMB     int
	cpus      int
	maxCPUs   int
}

// parseEntry reads the USER, MACHINE and DEFINE CPU statements of entry.
func parseEntry(entry *directory.Entry) (guest, error) {
	var g guest
	var sawUser bool

	for _, line := range entry.Lines {
		fields := strings.Fields(line)
		switch {
		case len(fields) >= 5 && fields[0] == "USER":
			pri, err := directory.ParseMemorySize(fields[3])
			if err != nil {
				return guest{}, fmt.Errorf("USER statement: %w", err)
			}
			mx, err := directory.ParseMemorySize(fields[4])
			if err != nil {
				return guest{}, fmt.Errorf("USER statement: %w", err)
			}
			g.primaryMB, g.maxMB = pri.Megabytes(), mx.Megabytes()
			sawUser = true
		case len(fields) == 3 && fields[0] == "MACHINE":
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				return guest{}, fmt.Errorf("MACHINE statement: %w", err)
			}
			g.maxCPUs = n
		case len(fields) >= 4 && fields[0] == "COMMAND" && fields[1] == "DEFINE" && fields[2] == "CPU":
			g.cpus++
		}
	}

	if !sawUser {
		return guest{}, fmt.Errorf("directory entry for %s has no USER statement", entry.UserID)
	}
	if g.cpus == 0 {
		g.cpus = 1
	}
	if g.maxCPUs < g.cpus {
		g.maxCPUs = g.cpus
	}
	if g.maxMB < g.primaryMB {
		g.maxMB = g.primaryMB
	}
	return g, nil
}

// DomainFromEntry builds the libvirt domain for a z/VM directory entry.
//
// The domain is named after the userid (see naming.DomainName) and its UUID
// is derived from the userid, so the same entry always yields the same
// definition.
func DomainFromEntry(entry *directory.Entry) (*libvirtxml.Domain, error) {
	g, err := parseEntry(entry)
	if err != nil {
		return nil, err
	}

	port := uint(0)
	return &libvirtxml.Domain{
		Type:        "kvm",
		Name:        naming.DomainName(entry.UserID),
		UUID:        uuid.NewSHA1(uuidNamespace, []byte(entry.UserID)).String(),
		Description: "z/VM guest " + entry.UserID,
		Memory: &libvirtxml.DomainMemory{
			Value: uint(g.maxMB),
			Unit:  "MiB",
		},
		CurrentMemory: &libvirtxml.DomainCurrentMemory{
			Value: uint(g.primaryMB),
			Unit:  "MiB",
		},
		VCPU: &libvirtxml.DomainVCPU{
			Placement: "static",
			Current:   uint(g.cpus),
			Value:     uint(g.maxCPUs),
		},
		OS: &libvirtxml.DomainOS{
			Type: &libvirtxml.DomainOSType{
				Arch:    Arch,
				Machine: Machine,
				Type:    "hvm",
			},
		},
		CPU: &libvirtxml.DomainCPU{
			Mode: "host-model",
		},
		OnPoweroff: "destroy",
		OnReboot:   "restart",
		OnCrash:    "preserve",
		Devices: &libvirtxml.DomainDeviceList{
			Consoles: []libvirtxml.DomainConsole{
				{
					Source: &libvirtxml.DomainChardevSource{
						Pty: &libvirtxml.DomainChardevSourcePty{},
					},
					Target: &libvirtxml.DomainConsoleTarget{
						Type: "sclp",
						Port: &port,
					},
				},
			},
			MemBalloon: &libvirtxml.DomainMemBalloon{
				Model: "virtio",
			},
		},
	}, nil
}

// GenerateDomainXML returns the domain XML for entry.
func GenerateDomainXML(entry *directory.Entry) (string, error) {
	domain, err := DomainFromEntry(entry)
	if err != nil {
		return "", err
	}

	xml, err := domain.Marshal()
	if err != nil {
		return "", fmt.Errorf("failed to marshal domain XML: %w", err)
	}
	return xml, nil
}
