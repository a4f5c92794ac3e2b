package process

import (
	"sort"
	"strconv"
	"strings"
)

type projector struct {
	table *Table
	s     Settings
	ents  *Entities
	memo  map[string]bool
}

// Project maps every recognized record in the table to its output entity.
// Records of unknown classes pass through with their raw scalars; records of
// structural classes (bodies, labellings, spaces) are consumed by the content
// handlers and not emitted on their own.
func Project(table *Table, s Settings) *Entities {
	p := &projector{
		table: table,
		s:     s,
		memo:  map[string]bool{},
		ents: &Entities{
			Pages:             []Page{},
			BlogPosts:         []BlogPost{},
			CustomContents:    []CustomContent{},
			Users:             []User{},
			Labels:            []Label{},
			ContentProperties: []ContentProperty{},
			Attachments:       []Attachment{},
			Others:            []Other{},
		},
	}

	for _, rec := range table.Records() {
		p.projectRecord(rec)
	}
	p.linkAttachments()

	return p.ents
}

// projectRecord projects a record at most once no matter how many other
// records point at it.
func (p *projector) projectRecord(rec *Record) {
	if p.memo[rec.Id] {
		return
	}
	p.memo[rec.Id] = true

	if structuralClasses[rec.Class] {
		return
	}

	h, ok := classHandlers[rec.Class]
	if !ok {
		p.ents.Others = append(p.ents.Others, Other{Id: rec.Id, Class: rec.Class, Scalars: rawScalars(rec)})
		return
	}

	if contentClasses[rec.Class] {
		if !p.s.includeClass(rec.Class) {
			return
		}
		if _, ok := rec.FirstRef("originalVersion"); ok {
			p.ents.HistoricalSkipped++
			p.s.Logger.Debug().Str("class", rec.Class).Str("id", rec.Id).Msg("skipping historical content version")
			return
		}
	}

	h(p, rec)
}

// body follows the content's bodyContents collection to its BodyContent
// block. Very old exports inline the body as a plain property.
func (p *projector) body(rec *Record) string {
	for _, el := range rec.Collections["bodyContents"] {
		bc := p.elementRecord(el)
		if bc == nil {
			continue
		}
		if b := bc.String("body"); b != "" {
			return b
		}
	}
	return rec.String("body")
}

// userKey resolves a user-valued property to the user's key. A user that was
// referenced but never exported degrades to null.
func (p *projector) userKey(rec *Record, name string) *string {
	ref, ok := rec.FirstRef(name)
	if !ok {
		return nil
	}
	if _, ok := p.table.Resolve(ref); !ok {
		p.s.Logger.Debug().Str("id", rec.Id).Str("property", name).Str("user", ref.Id).Msg("user not in export")
		return nil
	}
	k := ref.Id
	return &k
}

// labels walks the labellings collection. Labellings appear either embedded
// in the collection or as their own blocks referenced from it.
func (p *projector) labels(rec *Record) ([]string, []string) {
	ids, names := []string{}, []string{}
	for _, el := range rec.Collections["labellings"] {
		labelling := p.elementRecord(el)
		if labelling == nil {
			continue
		}
		lref, ok := labelling.FirstRef("label")
		if !ok {
			continue
		}
		label, ok := p.table.Resolve(lref)
		if !ok {
			p.s.Logger.Debug().Str("id", rec.Id).Str("label", lref.Id).Msg("label not in export")
			continue
		}
		ids = append(ids, lref.Id)
		names = append(names, label.String("name"))
	}
	return ids, names
}

func (p *projector) contentPropertyIds(rec *Record) []string {
	ids := []string{}
	for _, el := range rec.Collections["contentProperties"] {
		if el.Ref == nil {
			continue
		}
		if _, ok := p.table.Resolve(*el.Ref); !ok {
			continue
		}
		ids = append(ids, el.Ref.Id)
	}
	return ids
}

// attachmentMeta collects the attachment's content properties into a flat
// name/value map; file size and media type live there.
func (p *projector) attachmentMeta(rec *Record) map[string]string {
	m := map[string]string{}
	for _, el := range rec.Collections["contentProperties"] {
		cp := p.elementRecord(el)
		if cp == nil || cp.Class != "ContentProperty" {
			continue
		}
		name := cp.String("name")
		if name == "" {
			continue
		}
		val := cp.String("stringValue")
		if val == "" {
			val = cp.String("longValue")
		}
		m[name] = val
	}
	return m
}

func (p *projector) elementRecord(el Element) *Record {
	if el.Record != nil {
		return el.Record
	}
	if el.Ref != nil {
		rec, _ := p.table.Resolve(*el.Ref)
		return rec
	}
	return nil
}

// linkAttachments back-fills each content entity's attachment id list from
// the projected attachments' container ids.
func (p *projector) linkAttachments() {
	pages := map[string]*Page{}
	for i := range p.ents.Pages {
		pages[p.ents.Pages[i].Id] = &p.ents.Pages[i]
	}
	posts := map[string]*BlogPost{}
	for i := range p.ents.BlogPosts {
		posts[p.ents.BlogPosts[i].Id] = &p.ents.BlogPosts[i]
	}
	customs := map[string]*CustomContent{}
	for i := range p.ents.CustomContents {
		customs[p.ents.CustomContents[i].Id] = &p.ents.CustomContents[i]
	}

	for _, att := range p.ents.Attachments {
		if att.ContainerId == "" {
			continue
		}
		if pg, ok := pages[att.ContainerId]; ok {
			pg.AttachmentIds = append(pg.AttachmentIds, att.Id)
		} else if bp, ok := posts[att.ContainerId]; ok {
			bp.AttachmentIds = append(bp.AttachmentIds, att.Id)
		} else if cc, ok := customs[att.ContainerId]; ok {
			cc.AttachmentIds = append(cc.AttachmentIds, att.Id)
		}
	}

	for _, pg := range pages {
		sortIds(pg.AttachmentIds)
	}
	for _, bp := range posts {
		sortIds(bp.AttachmentIds)
	}
	for _, cc := range customs {
		sortIds(cc.AttachmentIds)
	}
}

func rawScalars(rec *Record) map[string]interface{} {
	m := map[string]interface{}{}
	for name, v := range rec.Scalars {
		m[name] = v.Interface()
	}
	return m
}

// idLess orders identifiers numerically when both sides are numeric; numeric
// ids sort before string keys.
func idLess(a, b string) bool {
	ai, aerr := strconv.ParseInt(a, 10, 64)
	bi, berr := strconv.ParseInt(b, 10, 64)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	if aerr == nil {
		return true
	}
	if berr == nil {
		return false
	}
	return strings.Compare(a, b) < 0
}

func sortIds(ids []string) {
	sort.Slice(ids, func(i, j int) bool { return idLess(ids[i], ids[j]) })
}
