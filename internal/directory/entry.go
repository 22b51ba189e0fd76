package directory

import "strings"

// Entry is a user directory entry ready to be submitted.
type Entry struct {
	UserID string
	Lines  []string
}

// Bytes returns the entry as newline-terminated statements, the form
// Image_Create_DM reads from its input file.
func (e *Entry) Bytes() []byte {
	return []byte(e.String())
}

func (e *Entry) String() string {
	if len(e.Lines) == 0 {
		return ""
	}
	return strings.Join(e.Lines, "\n") + "\n"
}
