package directory

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jbweber/zdir/internal/grammar"
	"github.com/jbweber/zdir/internal/params"
)

func minimalParams() params.Params {
	return params.Params{
		grammar.KeyPassword:    params.String("PASSW0RD"),
		grammar.KeyPriMemSize:  params.String("2G"),
		grammar.KeyPrivClasses: params.String("G"),
	}
}

func testBuilder() Builder {
	return Builder{MaxReservedMB: testMaxReservedMB}
}

func TestBuild_Minimal(t *testing.T) {
	entry, err := testBuilder().Build("LINUX01", minimalParams())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := []string{
		"USER LINUX01 PASSW0RD 2G 2G G",
		"COMMAND SET VCONFIG MODE LINUX",
		"COMMAND DEFINE CPU 00 TYPE IFL",
	}
	if diff := cmp.Diff(want, entry.Lines); diff != "" {
		t.Errorf("Build() lines mismatch (-want +got):\n%s", diff)
	}
	if entry.UserID != "LINUX01" {
		t.Errorf("UserID = %q", entry.UserID)
	}
}

func TestBuild_AllOptions(t *testing.T) {
	p := minimalParams()
	p[grammar.KeyMaxMemSize] = params.String("4G")
	p[grammar.KeyProfile] = params.String("osdflt")
	p[grammar.KeyMaxCPU] = params.Int(8)
	p[grammar.KeyAccount] = params.String("acct01")
	p[grammar.KeyCPUCount] = params.Int(3)
	p[grammar.KeyCommandSchedule] = params.String("POOL1")
	p[grammar.KeyCommandSetShare] = params.String("RELATIVE 200")
	p[grammar.KeyCommandRDomain] = params.String("SSI")
	p[grammar.KeyCommandPCIF] = params.String("0110:0100")
	p[grammar.KeyIPL] = params.String("0100")
	p[grammar.KeyIPLParam] = params.String("FN=ZLINUX")
	p[grammar.KeyIPLLoadParam] = params.String("BOOT1")
	p[grammar.KeyLogonBy] = params.List("MAINT", "OPERATOR")
	p[grammar.KeySetReservedMem] = params.Flag()
	p[grammar.KeyLoadPortName] = params.String("0x5005076802400c1b")
	p[grammar.KeyLoadLUN] = params.String("0x0000000000000000")
	p[grammar.KeyDedicate] = params.String("1000 1001")
	p[grammar.KeyVDisk] = params.String("0101:512M")
	p[grammar.KeyComment] = params.String("first$@$@$second")

	entry, err := testBuilder().Build("LINUX01", p)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := []string{
		"USER LINUX01 PASSW0RD 2G 4G G",
		"INCLUDE OSDFLT",
		"MACHINE ESA 8",
		"ACCOUNT ACCT01",
		"COMMAND SET VCONFIG MODE LINUX",
		"COMMAND DEFINE CPU 00 TYPE IFL",
		"COMMAND DEFINE CPU 01 TYPE IFL",
		"COMMAND DEFINE CPU 02 TYPE IFL",
		"COMMAND SCHEDULE * WITHIN POOL POOL1",
		"SHARE RELATIVE 200",
		"COMMAND SET VMRELOCATE * DOMAIN SSI",
		"COMMAND ATTACH PCIF 0110 * AS 0100",
		"IPL 0100 PARM FN=ZLINUX LOADPARM BOOT1",
		"LOGONBY MAINT OPERATOR",
		"COMMAND DEF STOR RESERVED 2048M",
		"LOADDEV PORTname 5005076802400c1b",
		"LOADDEV LUN 0000000000000000",
		"DEDICATE 1000 1000",
		"DEDICATE 1001 1001",
		"MDISK 0101 FB-512 V-DISK 1048576 MWV",
		"* FIRST",
		"* SECOND",
	}
	if diff := cmp.Diff(want, entry.Lines); diff != "" {
		t.Errorf("Build() lines mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_CPUDefinitionsUseHex(t *testing.T) {
	p := minimalParams()
	p[grammar.KeyCPUCount] = params.Int(12)

	entry, err := testBuilder().Build("LINUX01", p)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var cpus []string
	for _, l := range entry.Lines {
		if strings.HasPrefix(l, "COMMAND DEFINE CPU") {
			cpus = append(cpus, strings.Fields(l)[3])
		}
	}
	want := []string{"00", "01", "02", "03", "04", "05", "06", "07", "08", "09", "0A", "0B"}
	if diff := cmp.Diff(want, cpus); diff != "" {
		t.Errorf("cpu addresses mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_CPUCountOfOneAddsNothing(t *testing.T) {
	p := minimalParams()
	p[grammar.KeyCPUCount] = params.Int(1)

	entry, err := testBuilder().Build("LINUX01", p)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(entry.Lines) != 3 {
		t.Errorf("expected 3 lines, got %v", entry.Lines)
	}
}

func TestBuild_IPLClauses(t *testing.T) {
	tests := []struct {
		name string
		set  map[params.Key]string
		want string
	}{
		{"target only", map[params.Key]string{grammar.KeyIPL: "CMS"}, "IPL CMS"},
		{"with parm", map[params.Key]string{grammar.KeyIPL: "0100", grammar.KeyIPLParam: "AUTOCR"}, "IPL 0100 PARM AUTOCR"},
		{"with loadparm", map[params.Key]string{grammar.KeyIPL: "0100", grammar.KeyIPLLoadParam: "1"}, "IPL 0100 LOADPARM 1"},
		{"parm without ipl is ignored", map[params.Key]string{grammar.KeyIPLParam: "AUTOCR"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := minimalParams()
			for k, v := range tt.set {
				p[k] = params.String(v)
			}
			entry, err := testBuilder().Build("LINUX01", p)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			var got string
			for _, l := range entry.Lines {
				if strings.HasPrefix(l, "IPL ") {
					got = l
				}
			}
			if got != tt.want {
				t.Errorf("IPL line = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuild_ReservedMemoryZeroGapStillEmitted(t *testing.T) {
	p := minimalParams()
	p[grammar.KeyMaxMemSize] = params.String("2048M")
	p[grammar.KeySetReservedMem] = params.Flag()

	entry, err := testBuilder().Build("LINUX01", p)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !contains(entry.Lines, "COMMAND DEF STOR RESERVED 0M") {
		t.Errorf("reserved storage statement missing: %v", entry.Lines)
	}
}

func TestBuild_VDiskClampedAtDeviceLimit(t *testing.T) {
	p := minimalParams()
	p[grammar.KeyVDisk] = params.String("0102:2048M")

	entry, err := testBuilder().Build("LINUX01", p)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !contains(entry.Lines, "MDISK 0102 FB-512 V-DISK 4194296 MWV") {
		t.Errorf("clamped MDISK statement missing: %v", entry.Lines)
	}
}

func TestBuild_CommentsSkipEmptyFragments(t *testing.T) {
	p := minimalParams()
	p[grammar.KeyComment] = params.String("FIRST$@$@$$@$@$second$@$@$")

	entry, err := testBuilder().Build("LINUX01", p)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	got := entry.Lines[len(entry.Lines)-2:]
	if diff := cmp.Diff([]string{"* FIRST", "* SECOND"}, got); diff != "" {
		t.Errorf("comment lines mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(params.Params)
		check  func(t *testing.T, err error)
	}{
		{
			name: "max memory below primary",
			mutate: func(p params.Params) {
				p[grammar.KeyMaxMemSize] = params.String("1G")
				p[grammar.KeySetReservedMem] = params.Flag()
			},
			check: wantErrType[*SizeOrderingError],
		},
		{
			name: "memory unit not M or G",
			mutate: func(p params.Params) {
				p[grammar.KeyMaxMemSize] = params.String("4T")
				p[grammar.KeySetReservedMem] = params.Flag()
			},
			check: wantErrType[*UnitFormatError],
		},
		{
			name: "vdisk over 2G",
			mutate: func(p params.Params) {
				p[grammar.KeyVDisk] = params.String("0101:2049M")
			},
			check: wantErrType[*SizeLimitError],
		},
		{
			name: "vdisk with unknown unit",
			mutate: func(p params.Params) {
				p[grammar.KeyVDisk] = params.String("0101:1T")
			},
			check: wantErrType[*UnitFormatError],
		},
		{
			name: "vdisk without size",
			mutate: func(p params.Params) {
				p[grammar.KeyVDisk] = params.String("0101")
			},
			check: wantErrType[*FormatError],
		},
		{
			name: "pcif without alias",
			mutate: func(p params.Params) {
				p[grammar.KeyCommandPCIF] = params.String("0110")
			},
			check: wantErrType[*FormatError],
		},
		{
			name: "pcif with empty alias",
			mutate: func(p params.Params) {
				p[grammar.KeyCommandPCIF] = params.String("0110:")
			},
			check: wantErrType[*FormatError],
		},
		{
			name: "pcif with empty function id",
			mutate: func(p params.Params) {
				p[grammar.KeyCommandPCIF] = params.String(":0110")
			},
			check: wantErrType[*FormatError],
		},
		{
			name: "password missing",
			mutate: func(p params.Params) {
				delete(p, grammar.KeyPassword)
			},
			check: func(t *testing.T, err error) {
				if err == nil || !strings.Contains(err.Error(), "pw") {
					t.Errorf("error = %v, want mention of pw", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := minimalParams()
			tt.mutate(p)
			entry, err := testBuilder().Build("LINUX01", p)
			if entry != nil {
				t.Errorf("Build() returned partial entry %v", entry.Lines)
			}
			tt.check(t, err)
		})
	}
}

func TestBuild_Idempotent(t *testing.T) {
	p := minimalParams()
	p[grammar.KeyCPUCount] = params.Int(4)
	p[grammar.KeyDedicate] = params.String("1000 1001 1002")
	p[grammar.KeySetReservedMem] = params.Flag()
	p[grammar.KeyMaxMemSize] = params.String("8G")

	first, err := testBuilder().Build("LINUX01", p)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	second, err := testBuilder().Build("LINUX01", p)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if string(first.Bytes()) != string(second.Bytes()) {
		t.Errorf("entries differ:\n%s\n---\n%s", first.Bytes(), second.Bytes())
	}
}

func TestEntry_Bytes(t *testing.T) {
	e := &Entry{UserID: "X", Lines: []string{"USER X P 1G 1G G", "* C"}}
	if got := string(e.Bytes()); got != "USER X P 1G 1G G\n* C\n" {
		t.Errorf("Bytes() = %q", got)
	}
	if got := (&Entry{}).String(); got != "" {
		t.Errorf("empty entry String() = %q", got)
	}
}

func wantErrType[T error](t *testing.T, err error) {
	t.Helper()
	var target T
	if !errors.As(err, &target) {
		t.Errorf("error = %v (%T), want %T", err, err, target)
	}
}

func contains(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}
