package disasm

import (
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/term"
)

func assemblyLexer() chroma.Lexer {
	for _, name := range []string{"gas", "GAS", "nasm"} {
		if lexer := lexers.Get(name); lexer != nil {
			return lexer
		}
	}
	return nil
}

func listingStyle() *chroma.Style {
	if style := styles.Get(StyleName); style != nil {
		return style
	}
	return styles.Fallback
}

func terminalFormatter() chroma.Formatter {
	for _, name := range []string{"terminal16m", "terminal256"} {
		if formatter := formatters.Get(name); formatter != nil {
			return formatter
		}
	}
	return formatters.Fallback
}

// Colorize highlights a listing with the ee-dark style. The text is
// returned unchanged when EEDIS_NO_COLOR is set or no lexer is available.
func Colorize(code string) (string, error) {
	if os.Getenv("EEDIS_NO_COLOR") != "" {
		return code, nil
	}

	lexer := assemblyLexer()
	if lexer == nil {
		return code, nil
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code, err
	}

	var buf strings.Builder
	if err := terminalFormatter().Format(&buf, listingStyle(), iterator); err != nil {
		return code, err
	}
	return buf.String(), nil
}

// ShouldColor reports whether output to f should be coloured.
func ShouldColor(enabled bool, f *os.File) bool {
	return enabled && os.Getenv("EEDIS_NO_COLOR") == "" && term.IsTerminal(f.Fd())
}
