package disasm

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// StyleName is the chroma style registered for listings.
const StyleName = "ee-dark"

// EEDark colours mnemonics white, registers teal, numbers pink and
// addresses gold.
var EEDark = styles.Register(chroma.MustNewStyle(StyleName, chroma.StyleEntries{
	chroma.Text:       "#FFFFFF",
	chroma.Background: "bg:#1e1e1e",
	chroma.Comment:    "#8A8A8A",

	chroma.Keyword:       "#FFFFFF",
	chroma.KeywordPseudo: "#FFFFFF",
	chroma.NameFunction:  "#FFFFFF",
	chroma.Name:          "#7C9C9D",
	chroma.NameBuiltin:   "#7C9C9D",
	chroma.NameVariable:  "#7C9C9D",
	chroma.NameLabel:     "#FFD700",
	chroma.NameAttribute: "#D7AFFF",

	chroma.LiteralNumber:        "#FF5F87",
	chroma.LiteralNumberHex:     "#FF5F87",
	chroma.LiteralNumberInteger: "#FF5F87",

	chroma.Operator:    "#FFFFFF",
	chroma.Punctuation: "#FFFFFF",
}))
