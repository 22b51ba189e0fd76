package directory

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// MaxVDiskBlocks is the largest V-DISK, in 512-byte blocks, that CP
	// will define.
	MaxVDiskBlocks = 4194296

	// maxVDiskRequestBlocks is 2 GiB in 512-byte blocks. Larger requests
	// are rejected rather than clamped.
	maxVDiskRequestBlocks = 4194304

	blocksPerMB = 2048
	blocksPerGB = 2097152

	// DEFINE STORAGE accepts at most seven decimal digits.
	maxReservedDigitsMB = 9999999

	// maxMagnitude keeps Megabytes from overflowing for G sizes.
	maxMagnitude = math.MaxInt / 1024
)

// MemorySize is a size with an M or G unit.
type MemorySize struct {
	Magnitude int
	Unit      byte // 'M' or 'G'
}

// ParseMemorySize parses strings such as "512M" or "4g".
func ParseMemorySize(s string) (MemorySize, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if len(v) < 2 {
		return MemorySize{}, &UnitFormatError{Value: s}
	}
	unit := v[len(v)-1]
	if unit != 'M' && unit != 'G' {
		return MemorySize{}, &UnitFormatError{Value: s}
	}
	n, err := strconv.Atoi(v[:len(v)-1])
	if err != nil || n < 0 || n > maxMagnitude {
		return MemorySize{}, &UnitFormatError{Value: s}
	}
	return MemorySize{Magnitude: n, Unit: unit}, nil
}

// Megabytes returns the size in megabytes.
func (m MemorySize) Megabytes() int {
	if m.Unit == 'G' {
		return m.Magnitude * 1024
	}
	return m.Magnitude
}

func (m MemorySize) String() string {
	return fmt.Sprintf("%d%c", m.Magnitude, m.Unit)
}

// ReservedMemSize returns the reserved storage size for a guest defined with
// primary and max memory sizes. The gap is clamped to maxReservedMB and
// formatted with an M suffix, or a G suffix when it needs more than seven
// digits. A zero gap is returned as "0M".
func ReservedMemSize(primary, max string, maxReservedMB int) (string, error) {
	pri, err := ParseMemorySize(primary)
	if err != nil {
		return "", err
	}
	mx, err := ParseMemorySize(max)
	if err != nil {
		return "", err
	}

	priMB, maxMB := pri.Megabytes(), mx.Megabytes()
	if maxMB < priMB {
		return "", &SizeOrderingError{Primary: primary, Max: max}
	}

	gap := maxMB - priMB
	if gap > maxReservedMB {
		gap = maxReservedMB
	}
	if gap < 0 {
		gap = 0
	}

	if gap > maxReservedDigitsMB {
		return fmt.Sprintf("%dG", gap/1024), nil
	}
	return fmt.Sprintf("%dM", gap), nil
}

// VDiskBlocks converts a V-DISK size such as "512M" or "1G" into 512-byte
// blocks. Sizes above 2G fail with *SizeLimitError; sizes between
// MaxVDiskBlocks and 2G are clamped to MaxVDiskBlocks.
func VDiskBlocks(size string) (int, error) {
	ms, err := ParseMemorySize(size)
	if err != nil {
		return 0, err
	}

	perUnit := int64(blocksPerMB)
	if ms.Unit == 'G' {
		perUnit = blocksPerGB
	}

	// Anything this large is over the limit; skip the multiplication.
	if int64(ms.Magnitude) > maxVDiskRequestBlocks {
		return 0, &SizeLimitError{Size: size}
	}
	blocks := int64(ms.Magnitude) * perUnit
	if blocks > maxVDiskRequestBlocks {
		return 0, &SizeLimitError{Size: size, Blocks: blocks}
	}
	if blocks > MaxVDiskBlocks {
		blocks = MaxVDiskBlocks
	}
	return int(blocks), nil
}
