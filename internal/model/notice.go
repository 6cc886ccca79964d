package model

// NoticeVariant is the visual intent of a user notice.
type NoticeVariant string

const (
	NoticeVariantDefault     NoticeVariant = "default"
	NoticeVariantSuccess     NoticeVariant = "success"
	NoticeVariantWarning     NoticeVariant = "warning"
	NoticeVariantDestructive NoticeVariant = "destructive"
)

// Notice is a one-shot message shown to the user.
type Notice struct {
	Title       string
	Description string
	Variant     NoticeVariant
}
