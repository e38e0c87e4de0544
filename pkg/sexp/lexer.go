package sexp

import (
	"bufio"
	"io"
	"unicode"

	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
)

// =============================================================================
// Tokens
// =============================================================================

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenLeftParen
	tokenRightParen
	tokenSymbol
	tokenString
)

type token struct {
	typ  tokenType
	text string
	line int
}

// =============================================================================
// Lexer
// =============================================================================

// lexer tokenizes s-expression text from a reader, tracking the source
// line of each token for error reporting.
type lexer struct {
	reader *bufio.Reader
	peeked *rune
	line   int
}

func newLexer(r io.Reader) *lexer {
	return &lexer{
		reader: bufio.NewReader(r),
		line:   1,
	}
}

// next reads the next token from the input.
func (l *lexer) next() (token, error) {
	// Skip whitespace and comments.
	for {
		ch, err := l.peek()
		if err != nil {
			if err == io.EOF {
				return token{typ: tokenEOF, line: l.line}, nil
			}
			return token{}, err
		}

		if unicode.IsSpace(ch) {
			l.read()
			continue
		}

		// Comments run from # to end of line.
		if ch == '#' {
			for {
				c, err := l.read()
				if err != nil || c == '\n' {
					break
				}
			}
			continue
		}

		break
	}

	ch, err := l.peek()
	if err != nil {
		if err == io.EOF {
			return token{typ: tokenEOF, line: l.line}, nil
		}
		return token{}, err
	}

	switch ch {
	case '(':
		l.read()
		return token{typ: tokenLeftParen, text: "(", line: l.line}, nil

	case ')':
		l.read()
		return token{typ: tokenRightParen, text: ")", line: l.line}, nil

	case '"':
		return l.readString()

	default:
		return l.readSymbol()
	}
}

// peek looks at the next rune without consuming it.
func (l *lexer) peek() (rune, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}

	ch, _, err := l.reader.ReadRune()
	if err != nil {
		return 0, err
	}

	l.peeked = &ch
	return ch, nil
}

// read consumes and returns the next rune.
func (l *lexer) read() (rune, error) {
	if l.peeked != nil {
		ch := *l.peeked
		l.peeked = nil
		if ch == '\n' {
			l.line++
		}
		return ch, nil
	}

	ch, _, err := l.reader.ReadRune()
	if err == nil && ch == '\n' {
		l.line++
	}
	return ch, err
}

// readString reads a quoted string atom.
func (l *lexer) readString() (token, error) {
	startLine := l.line
	l.read() // opening quote

	var result []rune
	for {
		ch, err := l.read()
		if err != nil {
			if err == io.EOF {
				return token{}, kfperrors.New(kfperrors.ErrCodeParse, "line %d: unterminated string", startLine)
			}
			return token{}, err
		}

		if ch == '"' {
			// A doubled quote is an escaped quote.
			next, err := l.peek()
			if err == nil && next == '"' {
				l.read()
				result = append(result, '"')
				continue
			}
			break
		}

		if ch == '\\' {
			next, err := l.read()
			if err != nil {
				return token{}, kfperrors.New(kfperrors.ErrCodeParse, "line %d: unterminated escape in string", startLine)
			}
			switch next {
			case 'n':
				result = append(result, '\n')
			case 't':
				result = append(result, '\t')
			case 'r':
				result = append(result, '\r')
			case '\\':
				result = append(result, '\\')
			case '"':
				result = append(result, '"')
			default:
				// Unknown escape, keep the character as-is.
				result = append(result, next)
			}
			continue
		}

		result = append(result, ch)
	}

	return token{typ: tokenString, text: string(result), line: startLine}, nil
}

// readSymbol reads an unquoted atom.
func (l *lexer) readSymbol() (token, error) {
	startLine := l.line

	var result []rune
	for {
		ch, err := l.peek()
		if err != nil {
			if err == io.EOF {
				break
			}
			return token{}, err
		}

		if unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '"' {
			break
		}

		l.read()
		result = append(result, ch)
	}

	if len(result) == 0 {
		return token{}, kfperrors.New(kfperrors.ErrCodeParse, "line %d: empty symbol", startLine)
	}

	return token{typ: tokenSymbol, text: string(result), line: startLine}, nil
}
