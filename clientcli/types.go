package clientcli

// UploadOptions configures an upload operation.
type UploadOptions struct {
	LocalPath   string
	FileName    string // optional, defaults to the local base name
	ContentType string // optional, auto-detect if empty
}

// UploadResult represents the result of uploading a single file.
type UploadResult struct {
	LocalPath   string `json:"local_path"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size_bytes"`
	URL         string `json:"url"`
	Err         error  `json:"-"` // nil on success
}

// FileEntry mirrors one element of the server's list response.
type FileEntry struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// serverError mirrors the JSON body of a non-200 server response.
type serverError struct {
	Error string `json:"error"`
}

// serverPresignResponse mirrors the JSON body of a presign response.
type serverPresignResponse struct {
	URL string `json:"url"`
}
