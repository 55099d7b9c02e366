// Package message models a commit message as the ordered lines the author
// wrote, each keeping its own terminator, and locates its subject.
package message

import (
	"errors"
	"strings"
)

// ErrNoSubject is returned when a rewrite needs a subject and the message is blank
var ErrNoSubject = errors.New("commit message has no subject")

// Message is an immutable sequence of lines. Every line except possibly the
// last ends with "\n" (or "\r\n").
type Message struct {
	lines []string
}

// Subject is the first non-blank line of a message
type Subject struct {
	// Index of the subject line within the message
	Index int
	// Line is the raw line including its terminator
	Line string
}

// Text returns the subject without its line terminator
func (s Subject) Text() string {
	return strings.TrimRight(s.Line, "\r\n")
}

// Parse splits raw message bytes into lines, keeping terminators
func Parse(data []byte) Message {
	if len(data) == 0 {
		return Message{}
	}
	return Message{lines: strings.SplitAfter(string(data), "\n")}.compact()
}

// FromLines builds a Message from lines that already carry their terminators
func FromLines(lines []string) Message {
	return Message{lines: append([]string(nil), lines...)}
}

// compact drops the empty trailing element SplitAfter leaves after a final "\n"
func (m Message) compact() Message {
	if n := len(m.lines); n > 0 && m.lines[n-1] == "" {
		m.lines = m.lines[:n-1]
	}
	return m
}

// Lines returns a copy of the lines
func (m Message) Lines() []string {
	return append([]string(nil), m.lines...)
}

// Len returns the number of lines
func (m Message) Len() int {
	return len(m.lines)
}

// String joins the lines back into the original text
func (m Message) String() string {
	return strings.Join(m.lines, "")
}

// Bytes is String as a byte slice
func (m Message) Bytes() []byte {
	return []byte(m.String())
}

// SubjectIndex returns the index of the first line whose trimmed content is
// non-empty, the way git picks a subject.
func (m Message) SubjectIndex() (int, bool) {
	for i, line := range m.lines {
		if strings.TrimSpace(line) != "" {
			return i, true
		}
	}
	return -1, false
}

// Subject returns the subject line, if any
func (m Message) Subject() (Subject, bool) {
	i, ok := m.SubjectIndex()
	if !ok {
		return Subject{Index: -1}, false
	}
	return Subject{Index: i, Line: m.lines[i]}, true
}

// PrefixSubject returns a new Message whose subject is key + " " + subject.
// Every other line is carried over unchanged and m itself is not modified.
func (m Message) PrefixSubject(key string) (Message, error) {
	subject, ok := m.Subject()
	if !ok {
		return Message{}, ErrNoSubject
	}

	lines := m.Lines()
	lines[subject.Index] = key + " " + subject.Line
	return Message{lines: lines}, nil
}
