package directory

import "fmt"

// UnitFormatError reports a size whose unit suffix is not M or G, or whose
// magnitude is not a non-negative integer.
type UnitFormatError struct {
	Value string
}

func (e *UnitFormatError) Error() string {
	return fmt.Sprintf("size %q must be a whole number followed by M or G", e.Value)
}

// SizeOrderingError reports a maximum memory size smaller than the primary
// memory size.
type SizeOrderingError struct {
	Primary string
	Max     string
}

func (e *SizeOrderingError) Error() string {
	return fmt.Sprintf("maximum memory size %s is less than primary memory size %s", e.Max, e.Primary)
}

// SizeLimitError reports a V-DISK request larger than the supported maximum.
type SizeLimitError struct {
	Size   string
	Blocks int64
}

func (e *SizeLimitError) Error() string {
	if e.Blocks == 0 {
		return fmt.Sprintf("V-DISK size %s exceeds the 2G maximum", e.Size)
	}
	return fmt.Sprintf("V-DISK size %s (%d blocks) exceeds the 2G maximum", e.Size, e.Blocks)
}

// FormatError reports a compound operand value that is not in the
// expected form, such as a --vdisk value without a colon.
type FormatError struct {
	Operand string
	Value   string
	Want    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s value %q is not in the form %s", e.Operand, e.Value, e.Want)
}
