package diff

// Origin tags where a diff line came from.
type Origin int

const (
	OriginContext Origin = iota
	OriginAddition
	OriginDeletion
	OriginHunkHeader
	OriginFileHeader
	OriginBinary
	OriginEof
)

// String returns a string representation of the origin.
func (o Origin) String() string {
	switch o {
	case OriginContext:
		return "context"
	case OriginAddition:
		return "addition"
	case OriginDeletion:
		return "deletion"
	case OriginHunkHeader:
		return "hunk-header"
	case OriginFileHeader:
		return "file-header"
	case OriginBinary:
		return "binary"
	case OriginEof:
		return "eof"
	default:
		return "unknown"
	}
}

// Prefix returns the marker printed before the line in unified diff output.
func (o Origin) Prefix() string {
	switch o {
	case OriginContext:
		return " "
	case OriginAddition:
		return "+"
	case OriginDeletion:
		return "-"
	default:
		return ""
	}
}

// ParseOrigin maps a single-character line origin code to an Origin.
// The three end-of-file codes ('=', '>', '<') all map to OriginEof.
func ParseOrigin(code byte) (Origin, bool) {
	switch code {
	case ' ':
		return OriginContext, true
	case '+':
		return OriginAddition, true
	case '-':
		return OriginDeletion, true
	case '=', '>', '<':
		return OriginEof, true
	case 'F':
		return OriginFileHeader, true
	case 'H':
		return OriginHunkHeader, true
	case 'B':
		return OriginBinary, true
	default:
		return 0, false
	}
}

// ChangeKind represents the type of change made to a file.
type ChangeKind int

const (
	ChangeKindAdded ChangeKind = iota
	ChangeKindModified
	ChangeKindDeleted
)

// String returns a string representation of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeKindAdded:
		return "added"
	case ChangeKindModified:
		return "modified"
	case ChangeKindDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}
