// Package gopher implements the Gopher item-type table, gopher:// URL handling
// and the network transport used to fetch menus and documents.
package gopher

// Type is a Gopher item type, taken from the first character of a menu line.
type Type int

// Item types understood by burrow.
const (
	Text       Type = iota // 0
	Menu                   // 1
	CSO                    // 2
	Error                  // 3
	Binhex                 // 4
	DOSFile                // 5
	UUEncoded              // 6
	Search                 // 7
	Telnet                 // 8
	Binary                 // 9
	Mirror                 // +
	GIF                    // g
	Image                  // I
	Telnet3270             // T
	HTML                   // h
	Info                   // i
	Sound                  // s
	Document               // d
	Other
)

var typeChars = map[byte]Type{
	'0': Text,
	'1': Menu,
	'2': CSO,
	'3': Error,
	'4': Binhex,
	'5': DOSFile,
	'6': UUEncoded,
	'7': Search,
	'8': Telnet,
	'9': Binary,
	'+': Mirror,
	'g': GIF,
	'I': Image,
	'T': Telnet3270,
	'h': HTML,
	'i': Info,
	's': Sound,
	'd': Document,
	// Seen in the wild but not in RFC 1436.
	'p': Other,
	'P': Other,
	';': Other,
	'c': Other,
	'e': Other,
	'x': Other,
	'r': Other,
	':': Other,
	'<': Other,
}

var typeNames = map[Type]string{
	Text:       "text",
	Menu:       "menu",
	CSO:        "cso",
	Error:      "error",
	Binhex:     "binhex",
	DOSFile:    "dos",
	UUEncoded:  "uuencoded",
	Search:     "search",
	Telnet:     "telnet",
	Binary:     "binary",
	Mirror:     "mirror",
	GIF:        "gif",
	Image:      "image",
	Telnet3270: "tn3270",
	HTML:       "html",
	Info:       "info",
	Sound:      "sound",
	Document:   "document",
	Other:      "other",
}

// TypeForChar returns the item type for a menu line's leading character.
// The second result is false for characters burrow doesn't know about.
func TypeForChar(c byte) (Type, bool) {
	t, ok := typeChars[c]
	return t, ok
}

// Char returns the canonical type character, as used in gopher:// URLs.
func (t Type) Char() byte {
	switch t {
	case Text:
		return '0'
	case Menu:
		return '1'
	case CSO:
		return '2'
	case Error:
		return '3'
	case Binhex:
		return '4'
	case DOSFile:
		return '5'
	case UUEncoded:
		return '6'
	case Search:
		return '7'
	case Telnet:
		return '8'
	case Binary:
		return '9'
	case Mirror:
		return '+'
	case GIF:
		return 'g'
	case Image:
		return 'I'
	case Telnet3270:
		return 'T'
	case HTML:
		return 'h'
	case Info:
		return 'i'
	case Sound:
		return 's'
	case Document:
		return 'd'
	}
	return '0'
}

// IsDownload reports whether the type is a binary file that should be saved
// rather than displayed.
func (t Type) IsDownload() bool {
	switch t {
	case Binhex, DOSFile, UUEncoded, Binary, GIF, Image, Sound, Document:
		return true
	}
	return false
}

// IsLink reports whether lines of this type get a link number in a menu.
func (t Type) IsLink() bool {
	return t != Info
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}
