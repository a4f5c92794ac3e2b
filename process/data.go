package process

import (
	"strconv"
	"strings"
	"time"
)

// DateFormat is the fixed date-time representation used by the export.
const DateFormat = "2006-01-02 15:04:05.000"

type ValueKind int

const (
	NullValue ValueKind = iota
	StringValue
	IntValue
	BoolValue
	DateValue
)

// Value is one scalar property value from an object block.
type Value struct {
	Kind ValueKind
	Str  string
	Int  int64
	Bool bool
	Date time.Time
}

func (v Value) Interface() interface{} {
	switch v.Kind {
	case StringValue:
		return v.Str
	case IntValue:
		return v.Int
	case BoolValue:
		return v.Bool
	case DateValue:
		return v.Date.Format(DateFormat)
	}
	return nil
}

// Reference is an identifier inside an object block denoting another block.
type Reference struct {
	Class string
	Id    string
}

// Element is one entry of a collection property. Exactly one field is set.
type Element struct {
	Ref    *Reference
	Value  *Value
	Record *Record
}

// Record is the generic decoded form of one object block. Embedded anonymous
// blocks inside collections get a Record with an empty Id.
type Record struct {
	Class       string
	Id          string
	IdName      string
	Scalars     map[string]Value
	Refs        map[string]Reference
	Collections map[string][]Element
}

func (r *Record) String(name string) string {
	v, ok := r.Scalars[name]
	if !ok {
		return ""
	}
	switch v.Kind {
	case StringValue:
		return v.Str
	case IntValue:
		return strconv.FormatInt(v.Int, 10)
	case DateValue:
		return v.Date.Format(DateFormat)
	case BoolValue:
		return strconv.FormatBool(v.Bool)
	}
	return ""
}

func (r *Record) Int(name string) (int64, bool) {
	v, ok := r.Scalars[name]
	if !ok {
		return 0, false
	}
	switch v.Kind {
	case IntValue:
		return v.Int, true
	case StringValue:
		i, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// DateString returns the property's value in the export's date representation,
// passing raw strings through untouched.
func (r *Record) DateString(name string) string {
	v, ok := r.Scalars[name]
	if !ok {
		return ""
	}
	if v.Kind == DateValue {
		return v.Date.Format(DateFormat)
	}
	return strings.TrimSpace(v.Str)
}

// FirstRef finds a reference-valued property by name. Older export variants
// serialize single references as one-element collections, so the collection
// of the same name is consulted as a fallback.
func (r *Record) FirstRef(name string) (Reference, bool) {
	if ref, ok := r.Refs[name]; ok {
		return ref, true
	}
	for _, el := range r.Collections[name] {
		if el.Ref != nil {
			return *el.Ref, true
		}
	}
	return Reference{}, false
}

// Projected entities. All relation fields are embedded id strings referring
// to entities in their own top-level output sections.

type Page struct {
	Id                 string   `json:"id"`
	Title              string   `json:"title"`
	SpaceKey           string   `json:"space_key,omitempty"`
	Body               string   `json:"body"`
	BodyText           string   `json:"body_text"`
	Version            int64    `json:"version"`
	CreatedAt          string   `json:"created_at,omitempty"`
	ModifiedAt         string   `json:"modified_at,omitempty"`
	ParentId           *string  `json:"parent_id"`
	AuthorKey          *string  `json:"author_key"`
	LastModifierKey    *string  `json:"last_modifier_key"`
	LabelIds           []string `json:"label_ids"`
	Labels             []string `json:"labels"`
	ContentPropertyIds []string `json:"content_property_ids"`
	AttachmentIds      []string `json:"attachment_ids"`
}

type BlogPost struct {
	Id                 string   `json:"id"`
	Title              string   `json:"title"`
	Body               string   `json:"body"`
	BodyText           string   `json:"body_text"`
	Version            int64    `json:"version"`
	PostedAt           string   `json:"posted_at,omitempty"`
	AuthorKey          *string  `json:"author_key"`
	LabelIds           []string `json:"label_ids"`
	Labels             []string `json:"labels"`
	ContentPropertyIds []string `json:"content_property_ids"`
	AttachmentIds      []string `json:"attachment_ids"`
}

// ContainerRef identifies the content a custom content object lives under.
// Kind is one of "page", "blog_post", "custom_content" or "unknown".
type ContainerRef struct {
	Kind string `json:"kind"`
	Id   string `json:"id"`
}

type CustomContent struct {
	Id            string        `json:"id"`
	ContentType   string        `json:"type"`
	Body          string        `json:"body"`
	BodyText      string        `json:"body_text"`
	Container     *ContainerRef `json:"container"`
	AuthorKey     *string       `json:"author_key"`
	CreatedAt     string        `json:"created_at,omitempty"`
	AttachmentIds []string      `json:"attachment_ids"`
}

type Attachment struct {
	Id           string  `json:"id"`
	Filename     string  `json:"filename"`
	MediaType    string  `json:"media_type,omitempty"`
	FileSize     int64   `json:"file_size"`
	Version      int64   `json:"version"`
	ContainerId  string  `json:"container_id,omitempty"`
	AuthorKey    *string `json:"author_key"`
	CreatedAt    string  `json:"created_at,omitempty"`
	RestoredPath *string `json:"restored_path"`
}

type User struct {
	Key      string `json:"key"`
	FullName string `json:"full_name"`
	Username string `json:"username"`
}

type Label struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Namespace string `json:"namespace,omitempty"`
}

type ContentProperty struct {
	Id        string      `json:"id"`
	Name      string      `json:"name"`
	Value     interface{} `json:"value"`
	ContentId string      `json:"content_id,omitempty"`
}

// Other is the pass-through shape for object blocks of classes the projector
// does not model, so schema extensions survive conversion.
type Other struct {
	Id      string                 `json:"id"`
	Class   string                 `json:"class"`
	Scalars map[string]interface{} `json:"scalars"`
}

// Entities holds everything the projector produced for one run.
type Entities struct {
	Pages             []Page
	BlogPosts         []BlogPost
	CustomContents    []CustomContent
	Users             []User
	Labels            []Label
	ContentProperties []ContentProperty
	Attachments       []Attachment
	Others            []Other

	HistoricalSkipped int
}

type Summary struct {
	DocumentId            string         `json:"document_id"`
	RecordsParsed         int            `json:"records_parsed"`
	RecordsSkipped        int            `json:"records_skipped"`
	DuplicateIds          int            `json:"duplicate_ids"`
	HistoricalSkipped     int            `json:"historical_versions_skipped"`
	Entities              map[string]int `json:"entities"`
	AttachmentsResolved   int            `json:"attachments_resolved"`
	AttachmentsUnresolved int            `json:"attachments_unresolved"`
	CopiesRequested       int            `json:"copies_requested"`
	CopiesCompleted       int            `json:"copies_completed"`
}

type Document struct {
	Pages             []Page            `json:"pages"`
	BlogPosts         []BlogPost        `json:"blog_posts"`
	CustomContents    []CustomContent   `json:"custom_contents"`
	Users             []User            `json:"users"`
	Labels            []Label           `json:"labels"`
	ContentProperties []ContentProperty `json:"content_properties"`
	Attachments       []Attachment      `json:"attachments"`
	Others            []Other           `json:"others"`
	Summary           Summary           `json:"summary"`
}

// CopyInstruction is one attachment restore for the copy executor.
type CopyInstruction struct {
	AttachmentId string
	Source       string
	Dest         string
}
