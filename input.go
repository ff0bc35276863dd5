package isoloot

import (
	"bufio"
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type inputEvent struct {
	inputString string
	err         error
}

var errInputGone = errors.New("Input ended")

const (
	sOUTOFSEQUENCE = iota
	sINESCAPE
	sDIRECTIVE
)

var keyNames = map[rune]string{
	rune(9):   "TAB",
	rune(13):  "ENTER",
	rune(21):  "KILL",
	rune(127): "BACKSPACE",
	rune(8):   "BACKSPACE",
}

// handleKeys turns terminal bytes into key names ("ENTER", "UP", ...) or
// single characters. A lone ESC is reported when the next key arrives.
func handleKeys(ctx context.Context, reader *bufio.Reader, stringChannel chan<- inputEvent, cancel context.CancelFunc) {
	inEscapeSequence := sOUTOFSEQUENCE

	emit := func(event inputEvent) bool {
		select {
		case stringChannel <- event:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		runeRead, _, err := reader.ReadRune()

		if err != nil || runeRead == 3 || runeRead == 4 {
			emit(inputEvent{"", errInputGone})
			cancel()
			return
		}

		key := ""
		switch inEscapeSequence {
		case sINESCAPE:
			if runeRead == '[' {
				inEscapeSequence = sDIRECTIVE
				continue
			}
			if !emit(inputEvent{"ESCAPE", nil}) {
				return
			}
			if runeRead == 27 {
				continue
			}
			inEscapeSequence = sOUTOFSEQUENCE
		case sDIRECTIVE:
			switch runeRead {
			case 'A':
				key = "UP"
			case 'B':
				key = "DOWN"
			case 'C':
				key = "RIGHT"
			case 'D':
				key = "LEFT"
			default:
				key = strconv.QuoteRune(runeRead)
			}
			inEscapeSequence = sOUTOFSEQUENCE
		}

		if key == "" {
			if runeRead == 27 {
				inEscapeSequence = sINESCAPE
				continue
			} else if newString, ok := keyNames[runeRead]; ok {
				key = newString
			} else {
				key = string(runeRead)
			}
		}

		if !emit(inputEvent{key, nil}) {
			return
		}
	}
}

// maxPromptHistory bounds how many submitted lines UP can recall
const maxPromptHistory = 32

// promptLine is the line editor under the map
type promptLine struct {
	runes   []rune
	history []string
	recall  int
}

func (p *promptLine) String() string {
	return string(p.runes)
}

// HandleKey applies one key from handleKeys. On ENTER it returns the
// line, unless blank, and clears the editor.
func (p *promptLine) HandleKey(key string) (string, bool) {
	switch key {
	case "ENTER":
		text := string(p.runes)
		p.runes = p.runes[:0]
		p.recall = len(p.history)
		if len(strings.TrimSpace(text)) == 0 {
			return "", false
		}
		p.history = append(p.history, text)
		if len(p.history) > maxPromptHistory {
			p.history = p.history[len(p.history)-maxPromptHistory:]
		}
		p.recall = len(p.history)
		return text, true
	case "BACKSPACE":
		if len(p.runes) > 0 {
			p.runes = p.runes[:len(p.runes)-1]
		}
	case "ESCAPE", "KILL":
		p.runes = p.runes[:0]
		p.recall = len(p.history)
	case "UP":
		if p.recall > 0 {
			p.recall--
			p.runes = []rune(p.history[p.recall])
		}
	case "DOWN":
		if p.recall < len(p.history)-1 {
			p.recall++
			p.runes = []rune(p.history[p.recall])
		} else {
			p.recall = len(p.history)
			p.runes = p.runes[:0]
		}
	default:
		if utf8.RuneCountInString(key) == 1 {
			r, _ := utf8.DecodeRuneInString(key)
			if unicode.IsPrint(r) {
				p.runes = append(p.runes, r)
			}
		}
	}

	return "", false
}
