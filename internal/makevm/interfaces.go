package makevm

import (
	"context"

	"github.com/jbweber/zdir/internal/directory"
)

// submitter hands a finished directory entry to the hypervisor.
//
// In production, this is satisfied by *smapi.Submitter or
// *libvirt.Submitter. In tests, this is satisfied by mock implementations.
type submitter interface {
	Submit(ctx context.Context, entry *directory.Entry) error
}
