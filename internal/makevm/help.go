package makevm

import (
	"fmt"
	"io"
)

var usageLines = []string{
	"Usage:",
	"  zdir makevm <userid> directory <password> <priMemSize> <privClasses>",
	"              [--cpus <cpuCnt>] [--maxCPU <maxCPUCnt>] [--maxMemSize <maxMemSize>]",
	"              [--ipl <ipl>] [--iplParam <parms>] [--iplLoadparam <loadparm>]",
	"              [--logonby <byUsers>] [--profile <profName>] [--setReservedMem]",
	"              [--dedicate <vdevs>] [--loadportname <wwpn>] [--loadlun <lun>]",
	"              [--vdisk <vdev:size>] [--account <acct>] [--comment <text>]",
	"              [--commandSchedule <pool>] [--commandSetShare <share>]",
	"              [--commandRelocationDomain <domain>] [--commandPcif <fid:vdev>]",
	"              [--showparms]",
	"  zdir makevm help",
	"  zdir makevm version",
}

var operandLines = [][2]string{
	{"<userid>", "Userid of the virtual machine to create."},
	{"<password>", "Password for the new virtual machine."},
	{"<priMemSize>", "Initial memory size, e.g. 2G or 512M."},
	{"<privClasses>", "Privilege classes for the new virtual machine."},
	{"--cpus <cpuCnt>", "Virtual CPUs the guest starts with."},
	{"--maxCPU <maxCPUCnt>", "Maximum virtual CPUs the guest may define."},
	{"--maxMemSize <maxMem>", "Maximum memory the guest may define."},
	{"--ipl <ipl>", "IPL disk or NSS for the directory entry."},
	{"--iplParam <parms>", "PARM string for the IPL statement."},
	{"--iplLoadparam <loadparm>", "LOADPARM for the IPL statement."},
	{"--logonby <byUsers>", "Colon separated userids allowed to log on by."},
	{"--profile <profName>", "z/VM PROFILE to include in the entry."},
	{"--setReservedMem", "Reserve (maxMemSize - priMemSize) as storage."},
	{"--dedicate <vdevs>", "Blank separated devices to dedicate."},
	{"--loadportname <wwpn>", "FCP port name for the LOADDEV statement."},
	{"--loadlun <lun>", "FCP logical unit for the LOADDEV statement."},
	{"--vdisk <vdev:size>", "Virtual disk in storage, sized in M or G."},
	{"--account <acct>", "ACCOUNT statement operands."},
	{"--comment <text>", "Comment lines, separated by $@$@$."},
	{"--commandSchedule <pool>", "CPU pool for COMMAND SCHEDULE."},
	{"--commandSetShare <share>", "Operands for the SHARE statement."},
	{"--commandRelocationDomain <d>", "SSI relocation domain."},
	{"--commandPcif <fid:vdev>", "PCI function to attach at vdev."},
	{"--showparms", "Log the parsed parameters."},
}

// writeHelp prints the MakeVM usage and operand descriptions.
func writeHelp(w io.Writer) {
	for _, l := range usageLines {
		_, _ = fmt.Fprintln(w, l)
	}
	_, _ = fmt.Fprintln(w, "Sub-functions:")
	_, _ = fmt.Fprintln(w, "      directory     - Create a virtual machine in the z/VM user directory.")
	_, _ = fmt.Fprintln(w, "      help          - Display this help information.")
	_, _ = fmt.Fprintln(w, "      version       - Show the version of the MakeVM function.")
	_, _ = fmt.Fprintln(w, "Operands:")
	for _, op := range operandLines {
		_, _ = fmt.Fprintf(w, "      %-32s - %s\n", op[0], op[1])
	}
}
