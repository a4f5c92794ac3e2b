package process

import (
	"strconv"
	"strings"
)

type classHandler func(p *projector, rec *Record)

var classHandlers map[string]classHandler

func init() {
	classHandlers = map[string]classHandler{
		"Page":                      handlePage,
		"BlogPost":                  handleBlogPost,
		"Blogpost":                  handleBlogPost,
		"CustomContentEntityObject": handleCustomContent,
		"Attachment":                handleAttachment,
		"ConfluenceUserImpl":        handleUser,
		"Label":                     handleLabel,
		"ContentProperty":           handleContentProperty,
	}
}

// structural classes are consumed while projecting content entities and never
// emitted on their own
var structuralClasses = map[string]bool{
	"BodyContent":  true,
	"Labelling":    true,
	"Space":        true,
	"OutgoingLink": true,
}

var contentClasses = map[string]bool{
	"Page":                      true,
	"BlogPost":                  true,
	"Blogpost":                  true,
	"CustomContentEntityObject": true,
}

var containerKinds = map[string]string{
	"Page":                      "page",
	"BlogPost":                  "blog_post",
	"Blogpost":                  "blog_post",
	"CustomContentEntityObject": "custom_content",
}

func handlePage(p *projector, rec *Record) {
	page := Page{
		Id:            rec.Id,
		Title:         rec.String("title"),
		Body:          p.body(rec),
		CreatedAt:     rec.DateString("creationDate"),
		ModifiedAt:    rec.DateString("lastModificationDate"),
		AttachmentIds: []string{},
	}
	page.BodyText = formatBody(page.Body)
	page.Version, _ = rec.Int("version")

	if ref, ok := rec.FirstRef("space"); ok {
		if space, ok := p.table.Resolve(ref); ok {
			page.SpaceKey = space.String("key")
		}
	}
	if ref, ok := rec.FirstRef("parent"); ok {
		if _, ok := p.table.Resolve(ref); ok {
			id := ref.Id
			page.ParentId = &id
		}
	}

	page.AuthorKey = p.userKey(rec, "creator")
	page.LastModifierKey = p.userKey(rec, "lastModifier")
	page.LabelIds, page.Labels = p.labels(rec)
	page.ContentPropertyIds = p.contentPropertyIds(rec)

	p.ents.Pages = append(p.ents.Pages, page)
}

func handleBlogPost(p *projector, rec *Record) {
	post := BlogPost{
		Id:            rec.Id,
		Title:         rec.String("title"),
		Body:          p.body(rec),
		PostedAt:      rec.DateString("creationDate"),
		AttachmentIds: []string{},
	}
	post.BodyText = formatBody(post.Body)
	post.Version, _ = rec.Int("version")

	post.AuthorKey = p.userKey(rec, "creator")
	post.LabelIds, post.Labels = p.labels(rec)
	post.ContentPropertyIds = p.contentPropertyIds(rec)

	p.ents.BlogPosts = append(p.ents.BlogPosts, post)
}

func handleCustomContent(p *projector, rec *Record) {
	cc := CustomContent{
		Id:            rec.Id,
		ContentType:   rec.String("pluginModuleKey"),
		Body:          p.body(rec),
		CreatedAt:     rec.DateString("creationDate"),
		AttachmentIds: []string{},
	}
	if cc.ContentType == "" {
		cc.ContentType = rec.String("contentType")
	}
	cc.BodyText = formatBody(cc.Body)

	if ref, ok := firstRefOf(rec, "containerContent", "container", "content"); ok {
		if target, ok := p.table.Resolve(ref); ok {
			kind, known := containerKinds[target.Class]
			if !known {
				kind = "unknown"
			}
			cc.Container = &ContainerRef{Kind: kind, Id: ref.Id}
		}
	}
	cc.AuthorKey = p.userKey(rec, "creator")

	p.ents.CustomContents = append(p.ents.CustomContents, cc)
}

func handleAttachment(p *projector, rec *Record) {
	att := Attachment{
		Id:        rec.Id,
		Filename:  rec.String("title"),
		CreatedAt: rec.DateString("creationDate"),
		Version:   1,
	}
	if att.Filename == "" {
		att.Filename = rec.String("fileName")
	}
	if v, ok := rec.Int("attachmentVersion"); ok {
		att.Version = v
	} else if v, ok := rec.Int("version"); ok {
		att.Version = v
	}

	// owning content id is kept even when the container block is absent;
	// the on-disk layout is derived from it
	if ref, ok := firstRefOf(rec, "content", "container", "containerContent"); ok {
		att.ContainerId = ref.Id
	}
	att.AuthorKey = p.userKey(rec, "creator")

	meta := p.attachmentMeta(rec)
	att.MediaType = meta["MEDIA_TYPE"]
	if att.MediaType == "" {
		att.MediaType = rec.String("contentType")
	}
	att.FileSize = firstInt(meta["FILESIZE"], meta["FILE_SIZE"], rec.String("fileSize"))

	p.ents.Attachments = append(p.ents.Attachments, att)
}

func handleUser(p *projector, rec *Record) {
	p.ents.Users = append(p.ents.Users, User{
		Key:      rec.Id,
		FullName: rec.String("fullName"),
		Username: rec.String("name"),
	})
}

func handleLabel(p *projector, rec *Record) {
	p.ents.Labels = append(p.ents.Labels, Label{
		Id:        rec.Id,
		Name:      rec.String("name"),
		Namespace: rec.String("namespace"),
	})
}

func handleContentProperty(p *projector, rec *Record) {
	cp := ContentProperty{Id: rec.Id, Name: rec.String("name")}
	for _, prop := range []string{"stringValue", "longValue", "dateValue"} {
		if v, ok := rec.Scalars[prop]; ok && v.Kind != NullValue {
			cp.Value = v.Interface()
			break
		}
	}
	if ref, ok := rec.FirstRef("content"); ok {
		cp.ContentId = ref.Id
	}

	p.ents.ContentProperties = append(p.ents.ContentProperties, cp)
}

func firstInt(vals ...string) int64 {
	for _, v := range vals {
		if v == "" {
			continue
		}
		if i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return i
		}
	}
	return 0
}

func firstRefOf(rec *Record, names ...string) (Reference, bool) {
	for _, n := range names {
		if ref, ok := rec.FirstRef(n); ok {
			return ref, true
		}
	}
	return Reference{}, false
}
