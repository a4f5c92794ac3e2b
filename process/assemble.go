package process

import (
	"sort"
)

// Assemble folds the projected entities, the parse counts and the attachment
// resolution into the output document. Pure and deterministic: each section is
// ordered by ascending original identifier regardless of input order.
func Assemble(ents *Entities, pr *ParseResult, res ResolveResult, copied int, docId string, s Settings) Document {
	doc := Document{
		Pages:             ents.Pages,
		BlogPosts:         ents.BlogPosts,
		CustomContents:    ents.CustomContents,
		Users:             ents.Users,
		Labels:            ents.Labels,
		ContentProperties: ents.ContentProperties,
		Attachments:       ents.Attachments,
		Others:            ents.Others,
	}

	known := map[string]int{}
	for i := range doc.Attachments {
		known[doc.Attachments[i].Id] = i
	}
	for id, path := range res.Paths {
		i, ok := known[id]
		if !ok {
			s.Logger.Warn().Str("attachment", id).Msg("restored path for unknown attachment, ignoring")
			continue
		}
		p := path
		doc.Attachments[i].RestoredPath = &p
	}

	sort.Slice(doc.Pages, func(i, j int) bool { return idLess(doc.Pages[i].Id, doc.Pages[j].Id) })
	sort.Slice(doc.BlogPosts, func(i, j int) bool { return idLess(doc.BlogPosts[i].Id, doc.BlogPosts[j].Id) })
	sort.Slice(doc.CustomContents, func(i, j int) bool { return idLess(doc.CustomContents[i].Id, doc.CustomContents[j].Id) })
	sort.Slice(doc.Users, func(i, j int) bool { return idLess(doc.Users[i].Key, doc.Users[j].Key) })
	sort.Slice(doc.Labels, func(i, j int) bool { return idLess(doc.Labels[i].Id, doc.Labels[j].Id) })
	sort.Slice(doc.ContentProperties, func(i, j int) bool { return idLess(doc.ContentProperties[i].Id, doc.ContentProperties[j].Id) })
	sort.Slice(doc.Attachments, func(i, j int) bool { return idLess(doc.Attachments[i].Id, doc.Attachments[j].Id) })
	sort.Slice(doc.Others, func(i, j int) bool { return idLess(doc.Others[i].Id, doc.Others[j].Id) })

	doc.Summary = Summary{
		DocumentId:        docId,
		RecordsParsed:     pr.Parsed,
		RecordsSkipped:    pr.Skipped,
		DuplicateIds:      pr.Table.Duplicates(),
		HistoricalSkipped: ents.HistoricalSkipped,
		Entities: map[string]int{
			"pages":              len(doc.Pages),
			"blog_posts":         len(doc.BlogPosts),
			"custom_contents":    len(doc.CustomContents),
			"users":              len(doc.Users),
			"labels":             len(doc.Labels),
			"content_properties": len(doc.ContentProperties),
			"attachments":        len(doc.Attachments),
			"others":             len(doc.Others),
		},
		AttachmentsResolved:   res.Resolved,
		AttachmentsUnresolved: res.Unresolved,
		CopiesRequested:       len(res.Copies),
		CopiesCompleted:       copied,
	}

	return doc
}
