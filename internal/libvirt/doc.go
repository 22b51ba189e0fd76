// Package libvirt defines z/VM directory entries as s390x libvirt domains.
//
// It is the alternate submission backend for hosts that run Linux guests
// under KVM instead of z/VM. The directory entry is mapped to a domain
// definition (memory from the USER statement, vCPUs from MACHINE and
// DEFINE CPU) and the entry itself is kept in the domain metadata:
//
//	sub := libvirt.NewSubmitter("", 0)
//	if err := sub.Submit(ctx, entry); err != nil {
//	    return err
//	}
//
// Consumers define their own interfaces over *libvirt.Libvirt with only the
// operations they need; see domainClient in submit.go.
package libvirt
