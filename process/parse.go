package process

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ParseResult is what one pass over the export stream produced.
type ParseResult struct {
	Table   *Table
	Parsed  int
	Skipped int
}

// Parse consumes the export stream and builds the reference table in a single
// forward pass. Object blocks that fail to decode or lack an identifier are
// skipped and counted; an error is returned only when the document itself is
// not well formed.
func Parse(r io.Reader, s Settings) (*ParseResult, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader
	res := &ParseResult{Table: NewTable()}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading export stream. %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "object" {
			continue
		}

		var xo xmlObject
		if err := dec.DecodeElement(&xo, &se); err != nil {
			// a later Token call surfaces the error again if the whole
			// stream is broken
			res.Skipped++
			s.Logger.Debug().Err(err).Msg("skipping undecodable object block")
			continue
		}

		rec, err := convertObject(xo, true)
		if err != nil {
			res.Skipped++
			s.Logger.Debug().Err(err).Str("class", xo.Class).Msg("skipping malformed object block")
			continue
		}

		if dup := res.Table.Register(rec); dup {
			s.Logger.Warn().Str("class", rec.Class).Str("id", rec.Id).Msg("duplicate identifier, keeping later block")
		}
		res.Parsed++
	}

	return res, nil
}

// convertObject lowers a decoded block into a generic record. Top-level blocks
// must carry an identifier; embedded anonymous blocks need not.
func convertObject(xo xmlObject, topLevel bool) (*Record, error) {
	if xo.Class == "" {
		return nil, fmt.Errorf("object block has no class attribute")
	}

	rec := &Record{
		Class:       xo.Class,
		Scalars:     map[string]Value{},
		Refs:        map[string]Reference{},
		Collections: map[string][]Element{},
	}

	if len(xo.Ids) > 0 {
		rec.Id = strings.TrimSpace(xo.Ids[0].Value)
		rec.IdName = xo.Ids[0].Name
	}
	if topLevel && rec.Id == "" {
		return nil, fmt.Errorf("object block %s has no identifier", xo.Class)
	}

	for _, p := range xo.Properties {
		if p.Id != nil {
			rec.Refs[p.Name] = Reference{Class: p.Class, Id: strings.TrimSpace(p.Id.Value)}
			continue
		}
		rec.Scalars[p.Name] = coerceScalar(p.Class, p.Value)
	}

	for _, ref := range xo.Refs {
		if ref.Id == nil {
			continue
		}
		rec.Refs[ref.Name] = Reference{Class: ref.Class, Id: strings.TrimSpace(ref.Id.Value)}
	}

	for _, c := range xo.Collections {
		elements := []Element{}
		for _, item := range c.Items {
			el, ok := convertCollectionItem(item)
			if !ok {
				continue
			}
			elements = append(elements, el)
		}
		rec.Collections[c.Name] = elements
	}

	return rec, nil
}

func convertCollectionItem(item xmlCollectionItem) (Element, bool) {
	switch item.XMLName.Local {
	case "element", "ref":
		if len(item.Ids) == 0 {
			return Element{}, false
		}
		return Element{Ref: &Reference{Class: item.Class, Id: strings.TrimSpace(item.Ids[0].Value)}}, true
	case "object":
		xo := xmlObject{
			Class:       item.Class,
			Ids:         item.Ids,
			Properties:  item.Properties,
			Refs:        item.Refs,
			Collections: item.Collections,
		}
		rec, err := convertObject(xo, false)
		if err != nil {
			return Element{}, false
		}
		return Element{Record: rec}, true
	}
	v := coerceScalar(item.Class, item.Value)
	return Element{Value: &v}, true
}

// coerceScalar applies the export's type tags. Unknown tags degrade to the
// raw string rather than failing.
func coerceScalar(classTag, raw string) Value {
	switch {
	case strings.Contains(classTag, "Timestamp"), strings.Contains(classTag, "Date"):
		dt, err := time.Parse(DateFormat, strings.TrimSpace(raw))
		if err == nil {
			return Value{Kind: DateValue, Date: dt}
		}
	case strings.Contains(classTag, "Integer"), strings.Contains(classTag, "Long"), strings.Contains(classTag, "Short"):
		if i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
			return Value{Kind: IntValue, Int: i}
		}
	case strings.Contains(classTag, "Boolean"):
		t := strings.TrimSpace(raw)
		if t == "true" || t == "false" {
			return Value{Kind: BoolValue, Bool: t == "true"}
		}
	}
	if raw == "" {
		return Value{Kind: NullValue}
	}
	return Value{Kind: StringValue, Str: raw}
}
