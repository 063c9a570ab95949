package explorer

import "time"

// StorageEntry is a virtual file or directory. Its existence is defined
// solely by the presence of an object (file) or marker object (directory)
// in the store; there is no separate metadata table.
type StorageEntry struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	IsDirectory  bool      `json:"is_directory"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified,omitzero"`
	PublicURL    string    `json:"public_url,omitempty"`
}

// Result is the envelope returned by mutating operations. Expected failures
// (not found on delete) come back as Success=false with a message instead of
// an error.
type Result struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Entry   *StorageEntry `json:"entry,omitempty"`
}

// UploadTicket is a one-time presigned upload target.
type UploadTicket struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}
