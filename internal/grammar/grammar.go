// Package grammar declares the operand grammar of the MakeVM function.
//
// The tables here are data only: positional operands and keyword tokens for
// each sub-operation, plus the parameter keys shared by the parser and the
// directory-entry builder.
package grammar

import "github.com/jbweber/zdir/internal/params"

// Sub-operation names, as given on the command line (case-insensitive).
const (
	SubDirectory = "DIRECTORY"
	SubHelp      = "HELP"
	SubVersion   = "VERSION"
)

// Parameter keys.
const (
	KeyPassword        params.Key = "pw"
	KeyPriMemSize      params.Key = "priMemSize"
	KeyPrivClasses     params.Key = "privClasses"
	KeyCPUCount        params.Key = "cpuCnt"
	KeyIPL             params.Key = "ipl"
	KeyLogonBy         params.Key = "byUsers"
	KeyMaxMemSize      params.Key = "maxMemSize"
	KeyProfile         params.Key = "profName"
	KeyMaxCPU          params.Key = "maxCPU"
	KeySetReservedMem  params.Key = "setReservedMem"
	KeyShowParms       params.Key = "showParms"
	KeyIPLParam        params.Key = "iplParam"
	KeyIPLLoadParam    params.Key = "iplLoadparam"
	KeyDedicate        params.Key = "dedicate"
	KeyLoadPortName    params.Key = "loadportname"
	KeyLoadLUN         params.Key = "loadlun"
	KeyVDisk           params.Key = "vdisk"
	KeyAccount         params.Key = "account"
	KeyComment         params.Key = "comment"
	KeyCommandSchedule params.Key = "commandSchedule"
	KeyCommandSetShare params.Key = "commandSetShare"
	KeyCommandRDomain  params.Key = "commandRDomain"
	KeyCommandPCIF     params.Key = "commandPcif"
)

// Directory is the grammar of the DIRECTORY (create) sub-operation.
var Directory = params.Grammar{
	Positional: []params.Positional{
		{Name: "password", Key: KeyPassword, Required: true, Type: params.TypeString},
		{Name: "Primary Memory Size (e.g. 2G)", Key: KeyPriMemSize, Required: true, Type: params.TypeString},
		{Name: "Privilege Class(es)", Key: KeyPrivClasses, Required: true, Type: params.TypeString},
	},
	Keywords: map[string]params.Keyword{
		"--cpus":                    {Key: KeyCPUCount, Arity: 1, Type: params.TypeInt},
		"--ipl":                     {Key: KeyIPL, Arity: 1, Type: params.TypeString},
		"--logonby":                 {Key: KeyLogonBy, Arity: 1, Type: params.TypeString},
		"--maxMemSize":              {Key: KeyMaxMemSize, Arity: 1, Type: params.TypeString},
		"--profile":                 {Key: KeyProfile, Arity: 1, Type: params.TypeString},
		"--maxCPU":                  {Key: KeyMaxCPU, Arity: 1, Type: params.TypeInt},
		"--setReservedMem":          {Key: KeySetReservedMem},
		"--showparms":               {Key: KeyShowParms},
		"--iplParam":                {Key: KeyIPLParam, Arity: 1, Type: params.TypeString},
		"--iplLoadparam":            {Key: KeyIPLLoadParam, Arity: 1, Type: params.TypeString},
		"--dedicate":                {Key: KeyDedicate, Arity: 1, Type: params.TypeString},
		"--loadportname":            {Key: KeyLoadPortName, Arity: 1, Type: params.TypeString},
		"--loadlun":                 {Key: KeyLoadLUN, Arity: 1, Type: params.TypeString},
		"--vdisk":                   {Key: KeyVDisk, Arity: 1, Type: params.TypeString},
		"--account":                 {Key: KeyAccount, Arity: 1, Type: params.TypeString},
		"--comment":                 {Key: KeyComment, Arity: 1, Type: params.TypeString},
		"--commandSchedule":         {Key: KeyCommandSchedule, Arity: 1, Type: params.TypeString},
		"--commandSetShare":         {Key: KeyCommandSetShare, Arity: 1, Type: params.TypeString},
		"--commandRelocationDomain": {Key: KeyCommandRDomain, Arity: 1, Type: params.TypeString},
		"--commandPcif":             {Key: KeyCommandPCIF, Arity: 1, Type: params.TypeString},
	},
}

// Help and Version take no operands.
var (
	Help    = params.Grammar{}
	Version = params.Grammar{}
)

// ForSubfunction returns the grammar of the named sub-operation.
func ForSubfunction(name string) (params.Grammar, bool) {
	switch name {
	case SubDirectory:
		return Directory, true
	case SubHelp:
		return Help, true
	case SubVersion:
		return Version, true
	default:
		return params.Grammar{}, false
	}
}

// Subfunctions returns the supported sub-operation names in sorted order.
func Subfunctions() []string {
	return []string{SubDirectory, SubHelp, SubVersion}
}
