package corpus

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// SGML record markers. The newswire dumps are not well-formed XML (bare
// ampersands, unclosed elements between records), so records are located
// by plain string scanning rather than an XML decoder.
const (
	recordOpen  = "<REUTERS"
	recordClose = "</REUTERS>"
)

// numericEntityRE matches numeric character references such as &#3;, which
// the newswire dumps use for control characters. They carry no text.
var numericEntityRE = regexp.MustCompile(`&#[0-9]+;`)

// sgmlEntities decodes the named entity escapes that appear in the dumps.
var sgmlEntities = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

// ReadSGML parses an SGML record stream. Each <REUTERS ...>...</REUTERS>
// record yields one Document with the TITLE and BODY element text; records
// without a BODY element are dropped. A record's NEWID attribute becomes
// the document ID when present, otherwise the 0-based record position.
// Content outside records, including a truncated trailing record, is
// ignored.
func ReadSGML(r io.Reader) ([]Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	var docs []Document
	rest := string(data)
	for {
		start := strings.Index(rest, recordOpen)
		if start < 0 {
			break
		}
		rest = rest[start:]
		end := strings.Index(rest, recordClose)
		if end < 0 {
			break
		}
		rec := rest[:end]
		rest = rest[end+len(recordClose):]

		body, ok := element(rec, "BODY")
		if !ok {
			continue
		}
		title, _ := element(rec, "TITLE")
		id, ok := attr(openingTag(rec), "NEWID")
		if !ok {
			id = strconv.Itoa(len(docs))
		}
		docs = append(docs, Document{
			ID:    id,
			Title: decodeText(title),
			Body:  decodeText(body),
		})
	}
	return docs, nil
}

// openingTag returns the record's opening tag text up to the closing '>'.
func openingTag(rec string) string {
	if i := strings.Index(rec, ">"); i >= 0 {
		return rec[:i]
	}
	return rec
}

// element extracts the text between <name> and </name> within rec.
func element(rec, name string) (string, bool) {
	open := "<" + name + ">"
	start := strings.Index(rec, open)
	if start < 0 {
		return "", false
	}
	start += len(open)
	end := strings.Index(rec[start:], "</"+name+">")
	if end < 0 {
		return "", false
	}
	return rec[start : start+end], true
}

// attr extracts a NAME="value" attribute from an opening tag.
func attr(tag, name string) (string, bool) {
	marker := name + `="`
	start := strings.Index(tag, marker)
	if start < 0 {
		return "", false
	}
	start += len(marker)
	end := strings.Index(tag[start:], `"`)
	if end < 0 {
		return "", false
	}
	return tag[start : start+end], true
}

// decodeText strips numeric character references, decodes named entities,
// and trims surrounding whitespace.
func decodeText(s string) string {
	s = numericEntityRE.ReplaceAllString(s, "")
	s = sgmlEntities.Replace(s)
	return strings.TrimSpace(s)
}
