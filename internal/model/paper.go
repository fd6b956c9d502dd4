package model

import "time"

// Paper is the metadata record describing one uploaded paper.
// This is a pure domain model with no database-specific dependencies or tags.
// The JSON layout mirrors the persisted record: StorageKey is the opaque blob
// key (serialized as "filename"), and the owning/assignee identities live
// under a nested "metadata" object.
type Paper struct {
	ID           string    `json:"id"`
	StorageKey   string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	ContentType  string    `json:"contentType"`
	Size         int64     `json:"size"`
	UploadDate   time.Time `json:"uploadDate"`
	Metadata     PaperMeta `json:"metadata"`
}

// PaperMeta cross-references the uploading student and the assigned mentor.
type PaperMeta struct {
	UploadedBy string `json:"uploadedBy"`
	AssignedTo string `json:"assignedTo"`
}
