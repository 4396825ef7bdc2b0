// Package intake turns raw operator input into ticket text and contact fields.
package intake

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	namePattern  = regexp.MustCompile(`(?i)name:[ \t]*([^\r\n]*)`)
)

// Contact holds the fields extracted from a ticket body. Either may be empty.
type Contact struct {
	Email string
	Name  string
}

// ExtractContact takes the first e-mail address in text and the remainder of
// the line after the first case-insensitive "name:" marker that is followed
// by a value. Matching runs on the original bytes, so text of any encoding is
// safe; invalid UTF-8 in the name is replaced.
func ExtractContact(text string) Contact {
	var c Contact
	c.Email = emailPattern.FindString(text)

	for _, m := range namePattern.FindAllStringSubmatch(text, -1) {
		if name := strings.TrimSpace(m[1]); name != "" {
			c.Name = strings.ToValidUTF8(name, "\uFFFD")
			break
		}
	}
	return c
}
