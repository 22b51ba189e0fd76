package directory

import (
	"fmt"
	"strings"

	"github.com/jbweber/zdir/internal/grammar"
	"github.com/jbweber/zdir/internal/params"
)

// commentDelimiter separates comment fragments in a --comment value.
const commentDelimiter = "$@$@$"

// Builder turns MakeVM DIRECTORY parameters into a directory entry.
type Builder struct {
	// MaxReservedMB caps the reserved storage statement, in megabytes.
	MaxReservedMB int
}

// input is what every rule sees.
type input struct {
	userID        string
	p             params.Params
	maxReservedMB int
}

type rule struct {
	name  string
	apply func(in *input) ([]string, error)
}

// rules run in this order; the resulting statement order is part of the
// directory entry contract.
var rules = []rule{
	{"user", userRule},
	{"include", includeRule},
	{"machine", machineRule},
	{"account", accountRule},
	{"console mode and base cpu", baseRule},
	{"additional cpus", cpusRule},
	{"schedule", scheduleRule},
	{"share", shareRule},
	{"relocation domain", relocationDomainRule},
	{"pci function", pcifRule},
	{"ipl", iplRule},
	{"logonby", logonByRule},
	{"reserved storage", reservedRule},
	{"load port name", loadPortNameRule},
	{"load lun", loadLUNRule},
	{"dedicate", dedicateRule},
	{"vdisk", vdiskRule},
	{"comments", commentRule},
}

// Build returns the directory entry for userID.
func (b Builder) Build(userID string, p params.Params) (*Entry, error) {
	in := &input{userID: userID, p: p, maxReservedMB: b.MaxReservedMB}

	var lines []string
	for _, r := range rules {
		out, err := r.apply(in)
		if err != nil {
			return nil, fmt.Errorf("%s statement: %w", r.name, err)
		}
		lines = append(lines, out...)
	}

	return &Entry{UserID: userID, Lines: lines}, nil
}

func (in *input) required(key params.Key) (string, error) {
	v, ok := in.p.Str(key)
	if !ok {
		return "", fmt.Errorf("parameter %s is required", key)
	}
	return v, nil
}

// maxMem falls back to the primary size when no maximum was given.
func (in *input) maxMem() (string, error) {
	if v, ok := in.p.Str(grammar.KeyMaxMemSize); ok {
		return v, nil
	}
	return in.required(grammar.KeyPriMemSize)
}

func one(line string) []string { return []string{line} }

func userRule(in *input) ([]string, error) {
	pw, err := in.required(grammar.KeyPassword)
	if err != nil {
		return nil, err
	}
	pri, err := in.required(grammar.KeyPriMemSize)
	if err != nil {
		return nil, err
	}
	mx, err := in.maxMem()
	if err != nil {
		return nil, err
	}
	classes, err := in.required(grammar.KeyPrivClasses)
	if err != nil {
		return nil, err
	}
	return one(fmt.Sprintf("USER %s %s %s %s %s", in.userID, pw, pri, mx, classes)), nil
}

func includeRule(in *input) ([]string, error) {
	v, ok := in.p.Str(grammar.KeyProfile)
	if !ok {
		return nil, nil
	}
	return one("INCLUDE " + strings.ToUpper(v)), nil
}

func machineRule(in *input) ([]string, error) {
	n, ok := in.p.Int(grammar.KeyMaxCPU)
	if !ok {
		return nil, nil
	}
	return one(fmt.Sprintf("MACHINE ESA %d", n)), nil
}

func accountRule(in *input) ([]string, error) {
	v, ok := in.p.Str(grammar.KeyAccount)
	if !ok {
		return nil, nil
	}
	return one("ACCOUNT " + strings.ToUpper(v)), nil
}

func baseRule(*input) ([]string, error) {
	return []string{
		"COMMAND SET VCONFIG MODE LINUX",
		"COMMAND DEFINE CPU 00 TYPE IFL",
	}, nil
}

func cpusRule(in *input) ([]string, error) {
	n, ok := in.p.Int(grammar.KeyCPUCount)
	if !ok {
		return nil, nil
	}
	var lines []string
	for i := 1; i < n; i++ {
		lines = append(lines, fmt.Sprintf("COMMAND DEFINE CPU %02X TYPE IFL", i))
	}
	return lines, nil
}

func scheduleRule(in *input) ([]string, error) {
	v, ok := in.p.Str(grammar.KeyCommandSchedule)
	if !ok {
		return nil, nil
	}
	return one("COMMAND SCHEDULE * WITHIN POOL " + v), nil
}

func shareRule(in *input) ([]string, error) {
	v, ok := in.p.Str(grammar.KeyCommandSetShare)
	if !ok {
		return nil, nil
	}
	return one("SHARE " + v), nil
}

func relocationDomainRule(in *input) ([]string, error) {
	v, ok := in.p.Str(grammar.KeyCommandRDomain)
	if !ok {
		return nil, nil
	}
	return one("COMMAND SET VMRELOCATE * DOMAIN " + v), nil
}

func pcifRule(in *input) ([]string, error) {
	v, ok := in.p.Str(grammar.KeyCommandPCIF)
	if !ok {
		return nil, nil
	}
	parts := strings.Split(v, ":")
	if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return nil, &FormatError{Operand: "--commandPcif", Value: v, Want: "<fid>:<vdev>"}
	}
	return one(fmt.Sprintf("COMMAND ATTACH PCIF %s * AS %s", parts[0], parts[1])), nil
}

func iplRule(in *input) ([]string, error) {
	target, ok := in.p.Str(grammar.KeyIPL)
	if !ok {
		return nil, nil
	}
	clauses := []string{"IPL", target}
	if v, ok := in.p.Str(grammar.KeyIPLParam); ok {
		clauses = append(clauses, "PARM", v)
	}
	if v, ok := in.p.Str(grammar.KeyIPLLoadParam); ok {
		clauses = append(clauses, "LOADPARM", v)
	}
	return one(strings.Join(clauses, " ")), nil
}

func logonByRule(in *input) ([]string, error) {
	users, ok := in.p.List(grammar.KeyLogonBy)
	if !ok {
		// A raw string value has not been split yet; treat it as one list.
		v, isStr := in.p.Str(grammar.KeyLogonBy)
		if !isStr {
			return nil, nil
		}
		users = strings.Split(v, ":")
	}
	return one("LOGONBY " + strings.Join(users, " ")), nil
}

// reservedRule always emits the statement when requested, even for a zero
// gap: a later memory resize reads the original value back from it.
func reservedRule(in *input) ([]string, error) {
	if !in.p.Has(grammar.KeySetReservedMem) {
		return nil, nil
	}
	pri, err := in.required(grammar.KeyPriMemSize)
	if err != nil {
		return nil, err
	}
	mx, err := in.maxMem()
	if err != nil {
		return nil, err
	}
	gap, err := ReservedMemSize(pri, mx, in.maxReservedMB)
	if err != nil {
		return nil, err
	}
	return one("COMMAND DEF STOR RESERVED " + gap), nil
}

func loadPortNameRule(in *input) ([]string, error) {
	v, ok := in.p.Str(grammar.KeyLoadPortName)
	if !ok {
		return nil, nil
	}
	return one("LOADDEV PORTname " + strings.TrimPrefix(v, "0x")), nil
}

func loadLUNRule(in *input) ([]string, error) {
	v, ok := in.p.Str(grammar.KeyLoadLUN)
	if !ok {
		return nil, nil
	}
	return one("LOADDEV LUN " + strings.TrimPrefix(v, "0x")), nil
}

func dedicateRule(in *input) ([]string, error) {
	v, ok := in.p.Str(grammar.KeyDedicate)
	if !ok {
		return nil, nil
	}
	var lines []string
	for _, vdev := range strings.Fields(v) {
		lines = append(lines, fmt.Sprintf("DEDICATE %s %s", vdev, vdev))
	}
	return lines, nil
}

func vdiskRule(in *input) ([]string, error) {
	v, ok := in.p.Str(grammar.KeyVDisk)
	if !ok {
		return nil, nil
	}
	vdev, size, found := strings.Cut(v, ":")
	vdev = strings.TrimSpace(vdev)
	size = strings.TrimSpace(size)
	if !found || vdev == "" || size == "" {
		return nil, &FormatError{Operand: "--vdisk", Value: v, Want: "<vdev>:<size>"}
	}
	blocks, err := VDiskBlocks(size)
	if err != nil {
		return nil, err
	}
	return one(fmt.Sprintf("MDISK %s FB-512 V-DISK %d MWV", vdev, blocks)), nil
}

func commentRule(in *input) ([]string, error) {
	v, ok := in.p.Str(grammar.KeyComment)
	if !ok {
		return nil, nil
	}
	var lines []string
	for _, c := range strings.Split(v, commentDelimiter) {
		if c == "" {
			continue
		}
		lines = append(lines, "* "+strings.ToUpper(c))
	}
	return lines, nil
}
