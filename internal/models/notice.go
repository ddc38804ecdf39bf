package models

// NoticeVariant selects how the client renders a transient notice.
type NoticeVariant string

const (
	NoticeDefault     NoticeVariant = "default"
	NoticeDestructive NoticeVariant = "destructive"
)

// Notice is a short-lived, user-visible message (a toast on the client).
type Notice struct {
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description"`
	Variant     NoticeVariant `json:"variant,omitempty"`
}

// NewNotice builds a default notice.
func NewNotice(title, description string) Notice {
	return Notice{Title: title, Description: description, Variant: NoticeDefault}
}

// NewErrorNotice builds a destructive notice.
func NewErrorNotice(title, description string) Notice {
	return Notice{Title: title, Description: description, Variant: NoticeDestructive}
}
